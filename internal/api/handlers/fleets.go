package handlers

import (
	"fleet-dispatch-service/internal/api/dto"
	"fleet-dispatch-service/internal/services"
	"net/http"
)

// FleetHandler exposes the day's fleet structure and crew assignment.
type FleetHandler struct {
	Dispatcher *services.Dispatcher
}

func (h *FleetHandler) Fleets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		fleets := h.Dispatcher.Fleets()
		res := dto.ListFleetsResponse{Fleets: make([]dto.FleetResponse, 0, len(fleets))}
		for _, f := range fleets {
			crew, err := h.Dispatcher.Crew(f.ID)
			if err != nil {
				writeDomainError(w, r, err)
				return
			}
			res.Fleets = append(res.Fleets, dto.FleetResponse{
				ID:      f.ID,
				Number:  f.Number,
				Members: toMemberResponses(crew),
			})
		}
		writeJSON(w, r, http.StatusOK, res)

	case http.MethodPost:
		var req dto.CreateFleetRequest
		if !decodeStrict(w, r, &req) {
			return
		}
		if req.Number == "" {
			writeError(w, r, http.StatusBadRequest, "number is required")
			return
		}

		fleet, err := h.Dispatcher.CreateFleet(req.Number)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, dto.FleetResponse{
			ID:      fleet.ID,
			Number:  fleet.Number,
			Members: []dto.MemberResponse{},
		})

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, r, http.StatusBadRequest, "id is required")
			return
		}
		if err := h.Dispatcher.RemoveFleet(id); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, "GET, POST, DELETE")
	}
}

// FleetMembers adds (POST) or removes (DELETE) one roster member on a fleet crew.
func (h *FleetHandler) FleetMembers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req dto.FleetMemberRequest
		if !decodeStrict(w, r, &req) {
			return
		}
		if req.FleetID == "" || req.MemberID == "" {
			writeError(w, r, http.StatusBadRequest, "fleet_id and member_id are required")
			return
		}
		if err := h.Dispatcher.AddMemberToFleet(req.FleetID, req.MemberID); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		fleetID := r.URL.Query().Get("fleet_id")
		memberID := r.URL.Query().Get("member_id")
		if fleetID == "" || memberID == "" {
			writeError(w, r, http.StatusBadRequest, "fleet_id and member_id are required")
			return
		}
		if err := h.Dispatcher.RemoveMemberFromFleet(fleetID, memberID); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, "POST, DELETE")
	}
}
