package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

func ResourceToResponse(resource *entity.Resource) *dto.ResourceResponse {
	if resource == nil {
		return nil
	}

	return &dto.ResourceResponse{
		ID:          resource.ID,
		Kind:        string(resource.Kind),
		DisplayName: resource.DisplayName,
		Ordering:    resource.Ordering,
		ActiveDays:  resource.ActiveDays,
		CreatedAt:   resource.CreatedAt,
		UpdatedAt:   resource.UpdatedAt,
	}
}

func ResourcesToResponses(resources []entity.Resource) []dto.ResourceResponse {
	responses := make([]dto.ResourceResponse, len(resources))
	for i := range resources {
		responses[i] = *ResourceToResponse(&resources[i])
	}
	return responses
}
