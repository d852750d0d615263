package entity

import (
	"fmt"
)

// ScheduleKind identifies one of the two booking domains.
type ScheduleKind string

const (
	// ScheduleKindRF is the radiofrequency treatment-room schedule.
	ScheduleKindRF ScheduleKind = "rf"
	// ScheduleKindTherapy is the manual-therapy therapist schedule.
	ScheduleKindTherapy ScheduleKind = "therapy"
)

func (k ScheduleKind) Valid() bool {
	return k == ScheduleKindRF || k == ScheduleKindTherapy
}

// GridSpec defines the fixed slot grid for one schedule kind. The grid exists
// independently of bookings: every bookable start time is a multiple of
// SlotMinutes between opening and closing.
type GridSpec struct {
	Kind         ScheduleKind
	SlotMinutes  int
	OpenMinutes  int // minutes since midnight
	CloseMinutes int
	BufferSlots  int
	ResourceKind ResourceKind
}

// NewGridSpec builds a GridSpec from "HH:MM" opening/closing times.
func NewGridSpec(kind ScheduleKind, openTime, closeTime string, slotMinutes, bufferSlots int, resourceKind ResourceKind) (GridSpec, error) {
	open, err := ParseSlot(openTime)
	if err != nil {
		return GridSpec{}, fmt.Errorf("invalid open time %q: %w", openTime, err)
	}
	close, err := ParseSlot(closeTime)
	if err != nil {
		return GridSpec{}, fmt.Errorf("invalid close time %q: %w", closeTime, err)
	}
	if slotMinutes <= 0 {
		return GridSpec{}, fmt.Errorf("slot size must be positive, got %d", slotMinutes)
	}
	if close <= open {
		return GridSpec{}, fmt.Errorf("close time %s must be after open time %s", closeTime, openTime)
	}
	if (close-open)%slotMinutes != 0 {
		return GridSpec{}, fmt.Errorf("working hours %s-%s are not a multiple of the %d-minute slot", openTime, closeTime, slotMinutes)
	}
	return GridSpec{
		Kind:         kind,
		SlotMinutes:  slotMinutes,
		OpenMinutes:  open,
		CloseMinutes: close,
		BufferSlots:  bufferSlots,
		ResourceKind: resourceKind,
	}, nil
}

// SlotCount returns the number of slots between opening and closing.
func (g GridSpec) SlotCount() int {
	return (g.CloseMinutes - g.OpenMinutes) / g.SlotMinutes
}

// Slots generates the time axis as "HH:MM" labels.
func (g GridSpec) Slots() []string {
	slots := make([]string, 0, g.SlotCount())
	for m := g.OpenMinutes; m < g.CloseMinutes; m += g.SlotMinutes {
		slots = append(slots, FormatSlot(m))
	}
	return slots
}

// AlignsToGrid reports whether the given minute-of-day is a valid slot start.
// Off-grid times are rejected by callers, never rounded.
func (g GridSpec) AlignsToGrid(minuteOfDay int) bool {
	if minuteOfDay < g.OpenMinutes || minuteOfDay >= g.CloseMinutes {
		return false
	}
	return (minuteOfDay-g.OpenMinutes)%g.SlotMinutes == 0
}

// SlotIndex returns the grid index of a minute-of-day. The caller must have
// checked AlignsToGrid first.
func (g GridSpec) SlotIndex(minuteOfDay int) int {
	return (minuteOfDay - g.OpenMinutes) / g.SlotMinutes
}

// ValidDuration reports whether a duration is a positive multiple of the
// slot size.
func (g GridSpec) ValidDuration(durationMinutes int) bool {
	return durationMinutes > 0 && durationMinutes%g.SlotMinutes == 0
}

// UsesBuffer reports whether this schedule kind reserves turnover slots
// after each booking.
func (g GridSpec) UsesBuffer() bool {
	return g.BufferSlots > 0
}

// ParseSlot converts an "HH:MM" label into minutes since midnight.
func ParseSlot(s string) (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("invalid time %q, use HH:MM", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hh*60 + mm, nil
}

// FormatSlot converts minutes since midnight back to an "HH:MM" label.
func FormatSlot(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}
