package converter

import (
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// BookingToResponse converts a Booking entity to its response DTO.
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:              booking.ID,
		ScheduleKind:    string(booking.ScheduleKind),
		ResourceID:      booking.ResourceID,
		Date:            booking.Date.Format(dateLayout),
		StartSlot:       booking.StartSlot,
		DurationMinutes: booking.DurationMinutes,
		PatientID:       booking.PatientID,
		PatientNameRaw:  booking.PatientNameRaw,
		Unmatched:       !booking.IsMatched(),
		DoctorCode:      booking.DoctorCode,
		TreatmentCodes:  booking.TreatmentCodes,
		SessionMarker:   booking.SessionMarker,
		PatientCategory: string(booking.PatientCategory),
		Status:          string(booking.Status),
		Notes:           booking.Notes,
		Version:         booking.Version,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}
