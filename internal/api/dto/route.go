package dto

type IngestManifestRequest struct {
	Content string `json:"content"`
}

type StopResponse struct {
	ID              string  `json:"id"`
	ClientCode      string  `json:"client_code,omitempty"`
	CustomerName    string  `json:"customer_name"`
	ZipCode         string  `json:"zip_code,omitempty"`
	Address         string  `json:"address"`
	City            string  `json:"city"`
	Priority        string  `json:"priority"`
	EstimatedLat    float64 `json:"estimated_lat"`
	EstimatedLng    float64 `json:"estimated_lng"`
	Notes           string  `json:"notes,omitempty"`
	OrderIndex      int     `json:"order_index"`
	AssignedFleetID *string `json:"assigned_fleet_id"`
}

type RoutePlanResponse struct {
	Stops            []StopResponse `json:"stops"`
	TotalDistanceKm  float64        `json:"total_distance_km"`
	TotalTimeMinutes float64        `json:"total_time_minutes"`
	Summary          string         `json:"summary"`
}

type MoveStopRequest struct {
	StopID  string  `json:"stop_id"`
	FleetID *string `json:"fleet_id"`
}

type FleetColumnResponse struct {
	FleetID     string         `json:"fleet_id"`
	FleetNumber string         `json:"fleet_number"`
	Stops       []StopResponse `json:"stops"`
}

type BoardResponse struct {
	Unassigned []StopResponse        `json:"unassigned"`
	Fleets     []FleetColumnResponse `json:"fleets"`
}

type NavigationResponse struct {
	URL string `json:"url"`
}
