package api

import (
	"fleet-dispatch-service/internal/api/handlers"
	"fleet-dispatch-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with the dispatcher and returns an
// http.Handler. This is the API composition root; handlers never touch
// concrete adapters.
func NewRouter(dispatcher *services.Dispatcher) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Dispatcher: dispatcher}
	rosterHandler := &handlers.RosterHandler{Dispatcher: dispatcher}
	fleetHandler := &handlers.FleetHandler{Dispatcher: dispatcher}
	dispatchHandler := &handlers.DispatchHandler{Dispatcher: dispatcher}

	mux.HandleFunc("/health", handlers.Health)

	mux.HandleFunc("/routes", routeHandler.Routes)
	mux.HandleFunc("/routes/sample", routeHandler.Sample)
	mux.HandleFunc("/routes/move", routeHandler.MoveStop)
	mux.HandleFunc("/board", routeHandler.Board)
	mux.HandleFunc("/navigation", routeHandler.Navigation)

	mux.HandleFunc("/members", rosterHandler.Members)
	mux.HandleFunc("/members/available", rosterHandler.AvailableMembers)
	mux.HandleFunc("/members/status", rosterHandler.ToggleStatus)
	mux.HandleFunc("/members/role", rosterHandler.ChangeRole)
	mux.HandleFunc("/roster/availability", rosterHandler.Availability)

	mux.HandleFunc("/fleets", fleetHandler.Fleets)
	mux.HandleFunc("/fleets/members", fleetHandler.FleetMembers)

	mux.HandleFunc("/dispatch", dispatchHandler.Sheets)

	return loggingMiddleware(mux)
}
