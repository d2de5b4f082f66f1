package llm

import (
	"encoding/json"
	"fleet-dispatch-service/internal/domain"
	"fleet-dispatch-service/internal/ports"
	"fmt"

	"google.golang.org/genai"
)

const manifestPrompt = `You are a logistics and route-sequencing specialist.
Analyze the following delivery manifest content.

ABOUT THE DATA: the sheet typically carries the columns "Código do cliente"
(client code), "Nome do Cliente" (customer name) and "CEP" (postal code). The
postal code is the key location hint when no explicit address is present.

Tasks:
1. Extract the delivery stops, capturing client code, customer name and postal code.
2. Use the address when present. Otherwise ESTIMATE the location (latitude/longitude)
   from the postal code and fill the address field with a description of that
   postal-code area.
3. Sequence the stops into a logical optimized route (travelling-salesman style),
   minimizing total distance.
4. Estimate the total distance and total time assuming average urban traffic.

Manifest content:
`

const availabilityPrompt = `Analyze the text below, a work schedule or staff list.
Identify the employees marked UNAVAILABLE for today (e.g. Folga, Férias,
Atestado, Off, DSR, Ausente).

Ignore anyone working or marked "Normal". Return only the people who will NOT work.

Schedule text:
`

// Wire payloads for the structured collaborator responses. The domain structs
// stay free of JSON tags; decoding happens here at the boundary.
type stopPayload struct {
	ID           string  `json:"id"`
	ClientCode   string  `json:"clientCode"`
	CustomerName string  `json:"customerName"`
	ZipCode      string  `json:"zipCode"`
	Address      string  `json:"address"`
	City         string  `json:"city"`
	Priority     string  `json:"priority"`
	EstimatedLat float64 `json:"estimatedLat"`
	EstimatedLng float64 `json:"estimatedLng"`
	Notes        string  `json:"notes"`
	OrderIndex   int     `json:"orderIndex"`
}

type routePlanPayload struct {
	Stops            []stopPayload `json:"stops"`
	TotalDistanceKm  float64       `json:"totalDistanceKm"`
	TotalTimeMinutes float64       `json:"totalTimeMinutes"`
	Summary          string        `json:"summary"`
}

type absencePayload struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func routePlanSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"stops": {
				Type:        genai.TypeArray,
				Description: "Ordered list of optimized stops.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":           {Type: genai.TypeString},
						"clientCode":   {Type: genai.TypeString, Description: "Client identifier code"},
						"customerName": {Type: genai.TypeString, Description: "Customer name"},
						"zipCode":      {Type: genai.TypeString, Description: "Delivery postal code"},
						"address":      {Type: genai.TypeString, Description: "Full address or postal-code area description"},
						"city":         {Type: genai.TypeString},
						"priority":     {Type: genai.TypeString, Enum: []string{"Alta", "Normal", "Baixa"}},
						"estimatedLat": {Type: genai.TypeNumber, Description: "Estimated latitude"},
						"estimatedLng": {Type: genai.TypeNumber, Description: "Estimated longitude"},
						"notes":        {Type: genai.TypeString},
						"orderIndex":   {Type: genai.TypeInteger},
					},
					Required: []string{"id", "customerName", "orderIndex", "estimatedLat", "estimatedLng"},
				},
			},
			"totalDistanceKm":  {Type: genai.TypeNumber},
			"totalTimeMinutes": {Type: genai.TypeNumber},
			"summary":          {Type: genai.TypeString, Description: "A short summary of the generated route."},
		},
		Required: []string{"stops", "totalDistanceKm", "totalTimeMinutes", "summary"},
	}
}

func availabilitySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":   {Type: genai.TypeString, Description: "Name of the unavailable employee"},
				"status": {Type: genai.TypeString, Description: "Reason for the absence (e.g. Folga, Férias)"},
			},
			Required: []string{"name", "status"},
		},
	}
}

func decodeRoutePlan(text string) (*domain.RoutePlan, error) {
	var payload routePlanPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode route plan: %w", err)
	}
	if len(payload.Stops) == 0 {
		return nil, fmt.Errorf("decode route plan: no stops returned")
	}

	stops := make([]domain.DeliveryStop, 0, len(payload.Stops))
	for _, s := range payload.Stops {
		priority := domain.Priority(s.Priority)
		if priority != domain.PriorityHigh && priority != domain.PriorityLow {
			priority = domain.PriorityNormal
		}

		stops = append(stops, domain.DeliveryStop{
			ID:           s.ID,
			ClientCode:   s.ClientCode,
			CustomerName: s.CustomerName,
			ZipCode:      s.ZipCode,
			Address:      s.Address,
			City:         s.City,
			Priority:     priority,
			EstimatedLat: s.EstimatedLat,
			EstimatedLng: s.EstimatedLng,
			Notes:        s.Notes,
			OrderIndex:   s.OrderIndex,
		})
	}

	return &domain.RoutePlan{
		Stops:            stops,
		TotalDistanceKm:  payload.TotalDistanceKm,
		TotalTimeMinutes: payload.TotalTimeMinutes,
		Summary:          payload.Summary,
	}, nil
}

func decodeAbsences(text string) ([]ports.Absence, error) {
	var payload []absencePayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode absences: %w", err)
	}

	absences := make([]ports.Absence, 0, len(payload))
	for _, a := range payload {
		absences = append(absences, ports.Absence{Name: a.Name, Reason: a.Status})
	}
	return absences, nil
}
