package domain

// Delivery priority as produced by the optimization collaborator.
// The wire values are fixed; the collaborator is prompted to emit exactly these.
type Priority string

const (
	PriorityHigh   Priority = "Alta"
	PriorityNormal Priority = "Normal"
	PriorityLow    Priority = "Baixa"
)

// Represents one manifest line item after optimization.
// OrderIndex is the visiting sequence assigned by the collaborator and defines
// route order. It is never changed locally; only AssignedFleetID is mutated,
// and only through the dispatcher. An empty AssignedFleetID means unassigned.
type DeliveryStop struct {
	ID              string
	ClientCode      string
	CustomerName    string
	ZipCode         string
	Address         string
	City            string
	Priority        Priority
	EstimatedLat    float64
	EstimatedLng    float64
	Notes           string
	OrderIndex      int
	AssignedFleetID string
}

// Represents one optimization result for the day.
// Stops keep the collaborator's insertion order (trusted as the optimized
// visiting sequence). At most one RoutePlan is active at a time.
type RoutePlan struct {
	Stops            []DeliveryStop
	TotalDistanceKm  float64
	TotalTimeMinutes float64
	Summary          string
}
