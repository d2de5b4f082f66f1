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

// RouteHandler exposes manifest ingestion, the active plan, the planning board
// and the derived navigation request.
type RouteHandler struct {
	Dispatcher *services.Dispatcher
}

// Routes serves the active plan (GET), manifest ingestion (POST) and plan
// reset (DELETE).
func (h *RouteHandler) Routes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		plan, err := h.Dispatcher.ActivePlan()
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toPlanResponse(plan))

	case http.MethodPost:
		var req dto.IngestManifestRequest
		if !decodeStrict(w, r, &req) {
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			writeError(w, r, http.StatusBadRequest, "content is required")
			return
		}
		h.ingest(w, r, req.Content)

	case http.MethodDelete:
		h.Dispatcher.ResetPlan()
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, r, "GET, POST, DELETE")
	}
}

// Sample feeds the built-in demo manifest through the regular ingestion path.
func (h *RouteHandler) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	h.ingest(w, r, services.SampleManifest)
}

func (h *RouteHandler) ingest(w http.ResponseWriter, r *http.Request, content string) {
	plan, err := h.Dispatcher.IngestManifest(r.Context(), content)
	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, toPlanResponse(plan))
	case errors.Is(err, domain.ErrIngestionInFlight), errors.Is(err, domain.ErrStaleIngestion):
		writeDomainError(w, r, err)
	default:
		// Collaborator failures are terminal for this action; the previous
		// plan is left untouched and the user retries manually.
		log.Printf("manifest ingestion failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "route optimization failed")
	}
}

// MoveStop reassigns one stop between fleets or back to unassigned.
func (h *RouteHandler) MoveStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.MoveStopRequest
	if !decodeStrict(w, r, &req) {
		return
	}
	if req.StopID == "" {
		writeError(w, r, http.StatusBadRequest, "stop_id is required")
		return
	}

	fleetID := ""
	if req.FleetID != nil {
		fleetID = *req.FleetID
	}

	if err := h.Dispatcher.MoveStop(req.StopID, fleetID); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Board serves the planning-board projection: the unassigned column plus one
// column per fleet, all in route order.
func (h *RouteHandler) Board(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	unassigned, columns := h.Dispatcher.Board()

	res := dto.BoardResponse{
		Unassigned: toStopResponses(unassigned),
		Fleets:     make([]dto.FleetColumnResponse, 0, len(columns)),
	}
	for _, c := range columns {
		res.Fleets = append(res.Fleets, dto.FleetColumnResponse{
			FleetID:     c.Fleet.ID,
			FleetNumber: c.Fleet.Number,
			Stops:       toStopResponses(c.Stops),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Navigation serves the external directions URL for the active plan.
func (h *RouteHandler) Navigation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	url, err := h.Dispatcher.NavigationURL()
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NavigationResponse{URL: url})
}
