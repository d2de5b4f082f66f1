package handlers

import (
	"errors"
	"fleet-dispatch-service/internal/api/dto"
	"fleet-dispatch-service/internal/domain"
	"fleet-dispatch-service/internal/services"
	"log"
	"net/http"
	"strings"
)

// RosterHandler exposes the staffing pool: registration, removal, availability
// toggles, role changes and the collaborator-backed schedule import.
type RosterHandler struct {
	Dispatcher *services.Dispatcher
}

func (h *RosterHandler) Members(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		res := dto.ListMembersResponse{Members: toMemberResponses(h.Dispatcher.Members())}
		writeJSON(w, r, http.StatusOK, res)

	case http.MethodPost:
		var req dto.RegisterMemberRequest
		if !decodeStrict(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, r, http.StatusBadRequest, "name is required")
			return
		}

		member, err := h.Dispatcher.RegisterMember(req.Name, domain.Role(req.Role), req.SpecificType)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toMemberResponse(member))

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, r, http.StatusBadRequest, "id is required")
			return
		}
		if err := h.Dispatcher.RemoveMember(id); err != nil {
			writeDomainError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, "GET, POST, DELETE")
	}
}

// AvailableMembers lists roster members not assigned to any fleet crew,
// optionally restricted to active ones with ?active=true.
func (h *RosterHandler) AvailableMembers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"
	members := h.Dispatcher.AvailableMembers(activeOnly)
	writeJSON(w, r, http.StatusOK, dto.ListMembersResponse{Members: toMemberResponses(members)})
}

func (h *RosterHandler) ToggleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.MemberStatusRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	member, err := h.Dispatcher.ToggleMemberStatus(req.MemberID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toMemberResponse(member))
}

func (h *RosterHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.MemberRoleRequest
	if !decodeStrict(w, r, &req) {
		return
	}

	member, err := h.Dispatcher.ChangeMemberRole(req.MemberID, domain.Role(req.Role))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toMemberResponse(member))
}

// Availability runs the schedule text through the availability collaborator
// and applies the returned absences to the roster.
func (h *RosterHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.AvailabilityRequest
	if !decodeStrict(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, r, http.StatusBadRequest, "content is required")
		return
	}

	updated, err := h.Dispatcher.IngestAvailability(r.Context(), req.Content)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, dto.AvailabilityResponse{UpdatedCount: updated})
	case errors.Is(err, domain.ErrIngestionInFlight):
		writeDomainError(w, r, err)
	default:
		log.Printf("availability ingestion failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "schedule analysis failed")
	}
}
