package dto

type MemberResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	SpecificType string `json:"specific_type"`
	Active       bool   `json:"active"`
	StatusReason string `json:"status_reason,omitempty"`
}

type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}

type RegisterMemberRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	SpecificType string `json:"specific_type"`
}

type MemberStatusRequest struct {
	MemberID string `json:"member_id"`
}

type MemberRoleRequest struct {
	MemberID string `json:"member_id"`
	Role     string `json:"role"`
}

type AvailabilityRequest struct {
	Content string `json:"content"`
}

type AvailabilityResponse struct {
	UpdatedCount int `json:"updated_count"`
}

type FleetResponse struct {
	ID      string           `json:"id"`
	Number  string           `json:"number"`
	Members []MemberResponse `json:"members"`
}

type ListFleetsResponse struct {
	Fleets []FleetResponse `json:"fleets"`
}

type CreateFleetRequest struct {
	Number string `json:"number"`
}

type FleetMemberRequest struct {
	FleetID  string `json:"fleet_id"`
	MemberID string `json:"member_id"`
}

type DispatchStopResponse struct {
	Sequence int          `json:"sequence"`
	Stop     StopResponse `json:"stop"`
}

type DispatchSheetResponse struct {
	FleetID     string                 `json:"fleet_id"`
	FleetNumber string                 `json:"fleet_number"`
	Crew        []MemberResponse       `json:"crew"`
	Stops       []DispatchStopResponse `json:"stops"`
}

type ListDispatchSheetsResponse struct {
	Date   string                  `json:"date"`
	Sheets []DispatchSheetResponse `json:"sheets"`
}
