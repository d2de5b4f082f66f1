package services

import (
	"fleet-dispatch-service/internal/domain"
	"fmt"
	"net/url"
	"strings"
)

// NavigationURL builds an external mapping/directions request for the active
// plan: first stop as origin, last as destination, everything between as
// waypoints, in the plan's route order.
func (d *Dispatcher) NavigationURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.plan == nil || len(d.plan.Stops) == 0 {
		return "", domain.ErrNoActivePlan
	}

	stops := d.plan.Stops
	origin := stopQuery(stops[0])
	destination := stopQuery(stops[len(stops)-1])

	waypoints := make([]string, 0, len(stops))
	if len(stops) > 2 {
		for _, s := range stops[1 : len(stops)-1] {
			waypoints = append(waypoints, stopQuery(s))
		}
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", origin)
	q.Set("destination", destination)
	if len(waypoints) > 0 {
		q.Set("waypoints", strings.Join(waypoints, "|"))
	}

	return "https://www.google.com/maps/dir/?" + q.Encode(), nil
}

// Prefer a formatted "address, city" query; fall back to raw coordinates when
// either part is missing.
func stopQuery(s domain.DeliveryStop) string {
	if s.Address != "" && s.City != "" {
		return s.Address + ", " + s.City
	}
	return fmt.Sprintf("%v,%v", s.EstimatedLat, s.EstimatedLng)
}
