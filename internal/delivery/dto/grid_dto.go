package dto

// Cell types of the dense schedule grid. Every (resource, date, slot) tuple
// maps to exactly one of these.
const (
	CellEmpty    = "empty"
	CellBooking  = "booking"  // a booking starts at this slot
	CellOccupied = "occupied" // interior slot of a multi-slot booking
	CellBuffer   = "buffer"   // turnover slot reserved after a booking
)

// GridCell is one cell of the projected grid. Only booking cells carry a
// payload; occupied and buffer cells reference the owning booking by
// position (clients look left for the booking cell).
type GridCell struct {
	Type    string           `json:"type"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

// ScheduleStats summarizes bookings over a date range.
type ScheduleStats struct {
	TotalBooked    int     `json:"total_booked"`
	TotalCompleted int     `json:"total_completed"`
	NoShows        int     `json:"no_shows"`
	Cancelled      int     `json:"cancelled"`
	BookedSlots    int     `json:"booked_slots"`
	CapacitySlots  int     `json:"capacity_slots"`
	FillRate       float64 `json:"fill_rate"`
	FillLevel      string  `json:"fill_level"`
}

// DaySummary is the collapsed per-day roll-up used by week and month views.
type DaySummary struct {
	Date           string  `json:"date"`
	TotalBooked    int     `json:"total_booked"`
	TotalCompleted int     `json:"total_completed"`
	NoShows        int     `json:"no_shows"`
	Cancelled      int     `json:"cancelled"`
	FillRate       float64 `json:"fill_rate"`
	FillLevel      string  `json:"fill_level"`
}

// Grid maps resource id -> slot label -> cell.
type Grid map[string]map[string]GridCell

type DailyGridResponse struct {
	ScheduleKind string             `json:"schedule_kind"`
	Date         string             `json:"date"`
	Resources    []ResourceResponse `json:"resources"`
	TimeSlots    []string           `json:"time_slots"`
	Grid         Grid               `json:"grid"`
	Remark       *RemarkResponse    `json:"remark,omitempty"`
	Stats        ScheduleStats      `json:"stats"`
}

// DayGrid is one day inside a weekly view.
type DayGrid struct {
	Date      string             `json:"date"`
	Resources []ResourceResponse `json:"resources"`
	Grid      Grid               `json:"grid"`
	Remark    *RemarkResponse    `json:"remark,omitempty"`
	Summary   DaySummary         `json:"summary"`
}

type WeeklyGridResponse struct {
	ScheduleKind string        `json:"schedule_kind"`
	WeekStart    string        `json:"week_start"`
	TimeSlots    []string      `json:"time_slots"`
	Days         []DayGrid     `json:"days"`
	Stats        ScheduleStats `json:"stats"`
}

// WeekSummary is one (possibly clamped) week inside a monthly view; only
// roll-up counts, no cells.
type WeekSummary struct {
	WeekStart string        `json:"week_start"`
	Days      []DaySummary  `json:"days"`
	Stats     ScheduleStats `json:"stats"`
}

type MonthlyGridResponse struct {
	ScheduleKind string        `json:"schedule_kind"`
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	Weeks        []WeekSummary `json:"weeks"`
	Stats        ScheduleStats `json:"stats"`
}
