package usecase

import (
	"context"
	"sort"
	"time"

	"hospital-scheduling/internal/converter"
	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GridUsecase is the grid projector: it derives dense day, week and month
// views from the sparse booking store. Reads are pure functions of the
// stored bookings and run concurrently with writes.
type GridUsecase interface {
	DailyGrid(ctx context.Context, kind entity.ScheduleKind, date string) (*dto.DailyGridResponse, error)
	WeeklyGrid(ctx context.Context, kind entity.ScheduleKind, weekStart string) (*dto.WeeklyGridResponse, error)
	MonthlyGrid(ctx context.Context, kind entity.ScheduleKind, year, month int) (*dto.MonthlyGridResponse, error)
}

type gridUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	specs        map[entity.ScheduleKind]entity.GridSpec
	bookingRepo  repository.BookingRepository
	resourceRepo repository.ResourceRepository
	remarkRepo   repository.RemarkRepository
	stats        StatsUsecase
}

func NewGridUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specs map[entity.ScheduleKind]entity.GridSpec,
	bookingRepo repository.BookingRepository,
	resourceRepo repository.ResourceRepository,
	remarkRepo repository.RemarkRepository,
	stats StatsUsecase,
) GridUsecase {
	return &gridUsecase{
		db:           db,
		log:          log,
		specs:        specs,
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		remarkRepo:   remarkRepo,
		stats:        stats,
	}
}

func (u *gridUsecase) DailyGrid(ctx context.Context, kind entity.ScheduleKind, dateStr string) (*dto.DailyGridResponse, error) {
	spec, ok := u.specs[kind]
	if !ok {
		return nil, ErrUnknownScheduleKind
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	resources, err := u.resourceRepo.FindByKind(u.db.WithContext(ctx), spec.ResourceKind)
	if err != nil {
		u.log.Warnf("Failed to load resources for %s grid: %+v", kind, err)
		return nil, err
	}
	bookings, err := u.bookingRepo.FindForRange(u.db.WithContext(ctx), kind, date, date)
	if err != nil {
		u.log.Warnf("Failed to load bookings for %s grid %s: %+v", kind, dateStr, err)
		return nil, err
	}
	remark, err := u.remarkRepo.FindByKindAndDate(u.db.WithContext(ctx), kind, date)
	if err != nil {
		u.log.Warnf("Failed to load remark for %s %s: %+v", kind, dateStr, err)
		return nil, err
	}
	stats, err := u.stats.DailyStats(ctx, kind, date)
	if err != nil {
		return nil, err
	}

	dayResources := activeResources(resources, date.Weekday())

	return &dto.DailyGridResponse{
		ScheduleKind: string(kind),
		Date:         dateStr,
		Resources:    converter.ResourcesToResponses(dayResources),
		TimeSlots:    spec.Slots(),
		Grid:         projectDay(spec, dayResources, bookings),
		Remark:       converter.RemarkToResponse(remark),
		Stats:        stats,
	}, nil
}

func (u *gridUsecase) WeeklyGrid(ctx context.Context, kind entity.ScheduleKind, weekStartStr string) (*dto.WeeklyGridResponse, error) {
	spec, ok := u.specs[kind]
	if !ok {
		return nil, ErrUnknownScheduleKind
	}
	weekStart, err := time.Parse(dateLayout, weekStartStr)
	if err != nil {
		return nil, ErrInvalidDate
	}
	weekEnd := weekStart.AddDate(0, 0, 6)

	resources, err := u.resourceRepo.FindByKind(u.db.WithContext(ctx), spec.ResourceKind)
	if err != nil {
		u.log.Warnf("Failed to load resources for %s grid: %+v", kind, err)
		return nil, err
	}
	bookings, err := u.bookingRepo.FindForRange(u.db.WithContext(ctx), kind, weekStart, weekEnd)
	if err != nil {
		u.log.Warnf("Failed to load bookings for %s week %s: %+v", kind, weekStartStr, err)
		return nil, err
	}
	remarks, err := u.remarkRepo.FindForRange(u.db.WithContext(ctx), kind, weekStart, weekEnd)
	if err != nil {
		u.log.Warnf("Failed to load remarks for %s week %s: %+v", kind, weekStartStr, err)
		return nil, err
	}

	byDate := groupByDate(bookings)
	remarkByDate := make(map[string]*entity.DailyRemark, len(remarks))
	for i := range remarks {
		remarkByDate[remarks[i].Date.Format(dateLayout)] = &remarks[i]
	}

	days := make([]dto.DayGrid, 0, 7)
	for day := weekStart; !day.After(weekEnd); day = day.AddDate(0, 0, 1) {
		dateStr := day.Format(dateLayout)
		dayResources := activeResources(resources, day.Weekday())
		dayBookings := byDate[dateStr]
		days = append(days, dto.DayGrid{
			Date:      dateStr,
			Resources: converter.ResourcesToResponses(dayResources),
			Grid:      projectDay(spec, dayResources, dayBookings),
			Remark:    converter.RemarkToResponse(remarkByDate[dateStr]),
			Summary:   daySummary(spec, dayResources, day, dayBookings),
		})
	}

	weekCapacity := capacitySlots(spec, resources, weekStart, weekEnd)

	return &dto.WeeklyGridResponse{
		ScheduleKind: string(kind),
		WeekStart:    weekStartStr,
		TimeSlots:    spec.Slots(),
		Days:         days,
		Stats:        aggregateStats(spec, bookings, weekCapacity),
	}, nil
}

// MonthlyGrid returns a per-week breakdown of per-day roll-ups, counts only.
// Weeks run Monday-based and are clamped to the month, so the monthly totals
// equal the sum of the weekly ones with no booking counted twice or lost at
// a resolution boundary.
func (u *gridUsecase) MonthlyGrid(ctx context.Context, kind entity.ScheduleKind, year, month int) (*dto.MonthlyGridResponse, error) {
	spec, ok := u.specs[kind]
	if !ok {
		return nil, ErrUnknownScheduleKind
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidDate
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	resources, err := u.resourceRepo.FindByKind(u.db.WithContext(ctx), spec.ResourceKind)
	if err != nil {
		u.log.Warnf("Failed to load resources for %s grid: %+v", kind, err)
		return nil, err
	}
	bookings, err := u.bookingRepo.FindForRange(u.db.WithContext(ctx), kind, first, last)
	if err != nil {
		u.log.Warnf("Failed to load bookings for %s %d-%02d: %+v", kind, year, month, err)
		return nil, err
	}

	byDate := groupByDate(bookings)

	var weeks []dto.WeekSummary
	var current dto.WeekSummary
	var weekBookings []entity.Booking
	var weekStart time.Time

	flush := func(weekEnd time.Time) {
		if len(current.Days) == 0 {
			return
		}
		capacity := capacitySlots(spec, resources, weekStart, weekEnd)
		current.Stats = aggregateStats(spec, weekBookings, capacity)
		weeks = append(weeks, current)
	}

	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Monday || day.Equal(first) {
			flush(day.AddDate(0, 0, -1))
			weekStart = day
			current = dto.WeekSummary{WeekStart: day.Format(dateLayout)}
			weekBookings = nil
		}
		dateStr := day.Format(dateLayout)
		dayBookings := byDate[dateStr]
		current.Days = append(current.Days, daySummary(spec, activeResources(resources, day.Weekday()), day, dayBookings))
		weekBookings = append(weekBookings, dayBookings...)
	}
	flush(last)

	monthCapacity := capacitySlots(spec, resources, first, last)

	return &dto.MonthlyGridResponse{
		ScheduleKind: string(kind),
		Year:         year,
		Month:        month,
		Weeks:        weeks,
		Stats:        aggregateStats(spec, bookings, monthCapacity),
	}, nil
}

// projectDay builds the dense cell map for one date: for every active
// resource, a single walk over its bookings writes the booking cell, the
// occupied interior cells, and the trailing buffer cells. Cost is
// O(resources x bookings-per-resource), no cross-product scan.
func projectDay(spec entity.GridSpec, resources []entity.Resource, bookings []entity.Booking) dto.Grid {
	byResource := make(map[uuid.UUID][]entity.Booking)
	for i := range bookings {
		byResource[bookings[i].ResourceID] = append(byResource[bookings[i].ResourceID], bookings[i])
	}

	grid := make(dto.Grid, len(resources))
	for i := range resources {
		grid[resources[i].ID.String()] = projectResourceDay(spec, byResource[resources[i].ID])
	}
	return grid
}

// projectResourceDay walks the grid once for a single resource and date.
// Cancelled bookings are skipped entirely: their slots read as empty and are
// bookable again.
func projectResourceDay(spec entity.GridSpec, bookings []entity.Booking) map[string]dto.GridCell {
	slotCount := spec.SlotCount()
	cells := make([]dto.GridCell, slotCount)
	for i := range cells {
		cells[i] = dto.GridCell{Type: dto.CellEmpty}
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].StartMinutes() < bookings[j].StartMinutes()
	})

	for i := range bookings {
		b := &bookings[i]
		if b.IsCancelled() {
			continue
		}
		start := b.StartMinutes()
		if !spec.AlignsToGrid(start) {
			continue
		}
		idx := spec.SlotIndex(start)
		span := b.DurationMinutes / spec.SlotMinutes

		cells[idx] = dto.GridCell{Type: dto.CellBooking, Booking: converter.BookingToResponse(b)}
		for j := 1; j < span && idx+j < slotCount; j++ {
			cells[idx+j] = dto.GridCell{Type: dto.CellOccupied}
		}
		// Buffer slots are truncated at closing and never override a real
		// booking that legitimately starts there.
		for j := 0; j < spec.BufferSlots; j++ {
			k := idx + span + j
			if k >= slotCount {
				break
			}
			if cells[k].Type == dto.CellEmpty {
				cells[k] = dto.GridCell{Type: dto.CellBuffer}
			}
		}
	}

	slots := spec.Slots()
	result := make(map[string]dto.GridCell, slotCount)
	for i, label := range slots {
		result[label] = cells[i]
	}
	return result
}

func daySummary(spec entity.GridSpec, dayResources []entity.Resource, day time.Time, bookings []entity.Booking) dto.DaySummary {
	capacity := spec.SlotCount() * len(dayResources)
	stats := aggregateStats(spec, bookings, capacity)
	return dto.DaySummary{
		Date:           day.Format(dateLayout),
		TotalBooked:    stats.TotalBooked,
		TotalCompleted: stats.TotalCompleted,
		NoShows:        stats.NoShows,
		Cancelled:      stats.Cancelled,
		FillRate:       stats.FillRate,
		FillLevel:      stats.FillLevel,
	}
}

func activeResources(resources []entity.Resource, day time.Weekday) []entity.Resource {
	active := make([]entity.Resource, 0, len(resources))
	for i := range resources {
		if resources[i].ActiveOn(day) {
			active = append(active, resources[i])
		}
	}
	return active
}

func groupByDate(bookings []entity.Booking) map[string][]entity.Booking {
	byDate := make(map[string][]entity.Booking)
	for i := range bookings {
		key := bookings[i].Date.Format(dateLayout)
		byDate[key] = append(byDate[key], bookings[i])
	}
	return byDate
}
