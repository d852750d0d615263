package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hospital-scheduling/internal/delivery/dto"
	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	statsKeyPrefix = "schedule:stats:"
	statsCacheTTL  = 5 * time.Minute
)

// StatsUsecase is the aggregator: per-day, per-week and per-month counts and
// fill rate, computed by scanning the booking store directly. Full grids are
// never derived when only counts are needed.
type StatsUsecase interface {
	RangeStats(ctx context.Context, kind entity.ScheduleKind, from, to time.Time) (dto.ScheduleStats, error)
	// DailyStats is RangeStats for a single day, cached in Redis since day
	// views are the hottest read path.
	DailyStats(ctx context.Context, kind entity.ScheduleKind, date time.Time) (dto.ScheduleStats, error)
	// InvalidateDay drops the cached stats for one day; called when a
	// booking event for that day arrives.
	InvalidateDay(ctx context.Context, kind entity.ScheduleKind, date string)
}

type statsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	specs        map[entity.ScheduleKind]entity.GridSpec
	bookingRepo  repository.BookingRepository
	resourceRepo repository.ResourceRepository
	redisClient  *redis.Client
}

func NewStatsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	specs map[entity.ScheduleKind]entity.GridSpec,
	bookingRepo repository.BookingRepository,
	resourceRepo repository.ResourceRepository,
	redisClient *redis.Client,
) StatsUsecase {
	return &statsUsecase{
		db:           db,
		log:          log,
		specs:        specs,
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		redisClient:  redisClient,
	}
}

func (u *statsUsecase) RangeStats(ctx context.Context, kind entity.ScheduleKind, from, to time.Time) (dto.ScheduleStats, error) {
	spec, ok := u.specs[kind]
	if !ok {
		return dto.ScheduleStats{}, ErrUnknownScheduleKind
	}

	bookings, err := u.bookingRepo.FindForRange(u.db.WithContext(ctx), kind, from, to)
	if err != nil {
		u.log.Warnf("Failed to load bookings for stats %s %s..%s: %+v", kind, from.Format(dateLayout), to.Format(dateLayout), err)
		return dto.ScheduleStats{}, err
	}

	resources, err := u.resourceRepo.FindByKind(u.db.WithContext(ctx), spec.ResourceKind)
	if err != nil {
		u.log.Warnf("Failed to load resources for stats %s: %+v", kind, err)
		return dto.ScheduleStats{}, err
	}

	capacity := capacitySlots(spec, resources, from, to)
	return aggregateStats(spec, bookings, capacity), nil
}

func (u *statsUsecase) DailyStats(ctx context.Context, kind entity.ScheduleKind, date time.Time) (dto.ScheduleStats, error) {
	key := statsKey(kind, date.Format(dateLayout))

	if cached, err := u.redisClient.Get(ctx, key).Result(); err == nil {
		var stats dto.ScheduleStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return stats, nil
		}
	}

	stats, err := u.RangeStats(ctx, kind, date, date)
	if err != nil {
		return dto.ScheduleStats{}, err
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := u.redisClient.Set(ctx, key, payload, statsCacheTTL).Err(); err != nil {
			u.log.Warnf("Failed to cache day stats %s: %+v", key, err)
		}
	}

	return stats, nil
}

func (u *statsUsecase) InvalidateDay(ctx context.Context, kind entity.ScheduleKind, date string) {
	if err := u.redisClient.Del(ctx, statsKey(kind, date)).Err(); err != nil {
		u.log.Warnf("Failed to invalidate day stats %s/%s: %+v", kind, date, err)
	}
}

func statsKey(kind entity.ScheduleKind, date string) string {
	return fmt.Sprintf("%s%s:%s", statsKeyPrefix, kind, date)
}

// aggregateStats rolls a set of bookings up into counts and fill rate.
// Cancelled bookings count in the cancelled bucket only; they occupy no
// slots. TotalBooked covers every non-cancelled booking regardless of its
// later completed/no-show outcome, which keeps weekly and monthly roll-ups
// additive.
func aggregateStats(spec entity.GridSpec, bookings []entity.Booking, capacity int) dto.ScheduleStats {
	stats := dto.ScheduleStats{CapacitySlots: capacity}

	for i := range bookings {
		b := &bookings[i]
		switch b.Status {
		case entity.BookingStatusCancelled:
			stats.Cancelled++
			continue
		case entity.BookingStatusCompleted:
			stats.TotalCompleted++
		case entity.BookingStatusNoShow:
			stats.NoShows++
		}
		stats.TotalBooked++
		stats.BookedSlots += b.DurationMinutes / spec.SlotMinutes
	}

	if capacity > 0 {
		stats.FillRate = float64(stats.BookedSlots) / float64(capacity)
	}
	stats.FillLevel = fillLevel(stats.FillRate)
	return stats
}

// capacitySlots is the total bookable slot count over a date range: slots
// per day times the resources active on each day.
func capacitySlots(spec entity.GridSpec, resources []entity.Resource, from, to time.Time) int {
	slotsPerDay := spec.SlotCount()
	capacity := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		active := 0
		for i := range resources {
			if resources[i].ActiveOn(day.Weekday()) {
				active++
			}
		}
		capacity += slotsPerDay * active
	}
	return capacity
}

// fillLevel maps a fill rate to the traffic-light level used to color-code
// week and month cells.
func fillLevel(rate float64) string {
	switch {
	case rate >= 0.8:
		return "red"
	case rate >= 0.5:
		return "yellow"
	default:
		return "green"
	}
}
