package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

func RemarkToResponse(remark *entity.DailyRemark) *dto.RemarkResponse {
	if remark == nil {
		return nil
	}

	return &dto.RemarkResponse{
		ID:           remark.ID,
		ScheduleKind: string(remark.ScheduleKind),
		Date:         remark.Date.Format(dateLayout),
		Content:      remark.Content,
		CreatedAt:    remark.CreatedAt,
		UpdatedAt:    remark.UpdatedAt,
	}
}
