package llm

import (
	"context"
	"fleet-dispatch-service/internal/domain"
	"fleet-dispatch-service/internal/ports"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// MockCollaborator is a deterministic offline stand-in for the Gemini
// collaborator, used for demos without an API key and throughout tests.
// It understands the semicolon-delimited manifest layout of the sample data
// and a "Name - Reason" schedule format, and derives stable pseudo coordinates
// from the customer name.
type MockCollaborator struct{}

func NewMockCollaborator() *MockCollaborator { return &MockCollaborator{} }

var absenceKeywords = []string{"Folga", "Férias", "Atestado", "Off", "DSR", "Ausente"}

func (m *MockCollaborator) OptimizeManifest(ctx context.Context, manifest string) (*domain.RoutePlan, error) {
	stops := []domain.DeliveryStop{}

	for _, line := range strings.Split(manifest, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "Nome do Cliente") {
			continue
		}

		fields := strings.Split(line, ";")
		if len(fields) < 2 {
			continue
		}
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}

		stop := domain.DeliveryStop{
			ID:           strconv.Itoa(len(stops) + 1),
			ClientCode:   fields[0],
			CustomerName: fields[1],
			Priority:     domain.PriorityNormal,
			City:         "São Paulo",
			OrderIndex:   len(stops),
		}
		if len(fields) > 2 {
			stop.ZipCode = fields[2]
		}
		if len(fields) > 3 {
			stop.Address = fields[3]
		}
		if len(fields) > 4 {
			switch domain.Priority(fields[4]) {
			case domain.PriorityHigh:
				stop.Priority = domain.PriorityHigh
			case domain.PriorityLow:
				stop.Priority = domain.PriorityLow
			}
		}
		stop.EstimatedLat, stop.EstimatedLng = pseudoCoordinates(stop.CustomerName)

		stops = append(stops, stop)
	}

	if len(stops) == 0 {
		return nil, fmt.Errorf("mock optimize manifest: no parsable stops")
	}

	return &domain.RoutePlan{
		Stops:            stops,
		TotalDistanceKm:  3.5 * float64(len(stops)),
		TotalTimeMinutes: 12 * float64(len(stops)),
		Summary:          fmt.Sprintf("Demo route with %d stops in manifest order.", len(stops)),
	}, nil
}

func (m *MockCollaborator) ParseAvailability(ctx context.Context, schedule string) ([]ports.Absence, error) {
	absences := []ports.Absence{}

	for _, line := range strings.Split(schedule, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, reason, ok := strings.Cut(line, " - ")
		if !ok {
			continue
		}
		reason = strings.TrimSpace(reason)

		for _, kw := range absenceKeywords {
			if strings.EqualFold(reason, kw) {
				absences = append(absences, ports.Absence{
					Name:   strings.TrimSpace(name),
					Reason: reason,
				})
				break
			}
		}
	}

	return absences, nil
}

// pseudoCoordinates spreads stops around central São Paulo using an FNV hash
// of the name, so repeated runs map the same customer to the same point.
func pseudoCoordinates(name string) (float64, float64) {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(name)))
	sum := h.Sum32()

	lat := -23.55 + float64(sum%1000)/10000.0
	lng := -46.63 + float64((sum/1000)%1000)/10000.0
	return lat, lng
}
