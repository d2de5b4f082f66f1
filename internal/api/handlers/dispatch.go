package handlers

import (
	"fleet-dispatch-service/internal/api/dto"
	"fleet-dispatch-service/internal/services"
	"net/http"
	"time"
)

// DispatchHandler serves the printable dispatch-sheet projection.
type DispatchHandler struct {
	Dispatcher *services.Dispatcher
}

func (h *DispatchHandler) Sheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	sheets := h.Dispatcher.DispatchSheets()

	res := dto.ListDispatchSheetsResponse{
		Date:   time.Now().Format("02/01/2006"),
		Sheets: make([]dto.DispatchSheetResponse, 0, len(sheets)),
	}
	for _, s := range sheets {
		stops := make([]dto.DispatchStopResponse, 0, len(s.Stops))
		for _, ss := range s.Stops {
			stops = append(stops, dto.DispatchStopResponse{
				Sequence: ss.Sequence,
				Stop:     toStopResponse(ss.Stop),
			})
		}

		res.Sheets = append(res.Sheets, dto.DispatchSheetResponse{
			FleetID:     s.FleetID,
			FleetNumber: s.FleetNumber,
			Crew:        toMemberResponses(s.Crew),
			Stops:       stops,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
