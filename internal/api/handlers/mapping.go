package handlers

import (
	"fleet-dispatch-service/internal/api/dto"
	"fleet-dispatch-service/internal/domain"
)

func toStopResponse(s domain.DeliveryStop) dto.StopResponse {
	var fleetID *string
	if s.AssignedFleetID != "" {
		id := s.AssignedFleetID
		fleetID = &id
	}

	return dto.StopResponse{
		ID:              s.ID,
		ClientCode:      s.ClientCode,
		CustomerName:    s.CustomerName,
		ZipCode:         s.ZipCode,
		Address:         s.Address,
		City:            s.City,
		Priority:        string(s.Priority),
		EstimatedLat:    s.EstimatedLat,
		EstimatedLng:    s.EstimatedLng,
		Notes:           s.Notes,
		OrderIndex:      s.OrderIndex,
		AssignedFleetID: fleetID,
	}
}

func toStopResponses(stops []domain.DeliveryStop) []dto.StopResponse {
	out := make([]dto.StopResponse, 0, len(stops))
	for _, s := range stops {
		out = append(out, toStopResponse(s))
	}
	return out
}

func toPlanResponse(p *domain.RoutePlan) dto.RoutePlanResponse {
	return dto.RoutePlanResponse{
		Stops:            toStopResponses(p.Stops),
		TotalDistanceKm:  p.TotalDistanceKm,
		TotalTimeMinutes: p.TotalTimeMinutes,
		Summary:          p.Summary,
	}
}

func toMemberResponse(m domain.TeamMember) dto.MemberResponse {
	return dto.MemberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Role:         string(m.Role),
		SpecificType: m.SpecificType,
		Active:       m.Active,
		StatusReason: m.StatusReason,
	}
}

func toMemberResponses(members []domain.TeamMember) []dto.MemberResponse {
	out := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return out
}
