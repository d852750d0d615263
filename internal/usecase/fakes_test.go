package usecase

import (
	"strings"
	"sync"
	"time"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They ignore the db handle; the usecases under
// test never reach real SQL.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

// intersectsLocked reports whether a non-cancelled booking other than
// excludeID already holds part of the given interval. Callers hold f.mu.
func (f *fakeBookingRepo) intersectsLocked(candidate *entity.Booking, excludeID uuid.UUID) bool {
	if candidate.IsCancelled() {
		return false
	}
	start, end := candidate.StartMinutes(), candidate.EndMinutes()
	for _, b := range f.bookings {
		if b.ID == excludeID || b.ResourceID != candidate.ResourceID || !b.Date.Equal(candidate.Date) {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// Create enforces the store's no-overlap constraint under the same lock that
// inserts the row, matching the atomicity of the real exclusion constraint.
func (f *fakeBookingRepo) Create(_ *gorm.DB, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intersectsLocked(booking, uuid.Nil) {
		return repository.ErrBookingOverlap
	}
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingRepo) FindForDay(_ *gorm.DB, kind entity.ScheduleKind, resourceID uuid.UUID, date time.Time) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.Booking
	for _, b := range f.bookings {
		if b.ScheduleKind == kind && b.ResourceID == resourceID && b.Date.Equal(date) {
			result = append(result, *b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) FindForRange(_ *gorm.DB, kind entity.ScheduleKind, from, to time.Time) ([]entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []entity.Booking
	for _, b := range f.bookings {
		if b.ScheduleKind == kind && !b.Date.Before(from) && !b.Date.After(to) {
			result = append(result, *b)
		}
	}
	return result, nil
}

// UpdateVersioned mirrors the conditional UPDATE of the real repository: the
// version check, the no-overlap constraint, and the field application happen
// atomically under one lock.
func (f *fakeBookingRepo) UpdateVersioned(_ *gorm.DB, id uuid.UUID, expectedVersion int, fields map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok || booking.Version != expectedVersion {
		return 0, nil
	}
	updated := *booking
	for key, value := range fields {
		switch key {
		case "version":
			updated.Version = value.(int)
		case "status":
			updated.Status = value.(entity.BookingStatus)
		case "resource_id":
			updated.ResourceID = value.(uuid.UUID)
		case "date":
			updated.Date = value.(time.Time)
		case "start_slot":
			updated.StartSlot = value.(string)
		case "duration_minutes":
			updated.DurationMinutes = value.(int)
		case "doctor_code":
			updated.DoctorCode = value.(string)
		case "treatment_codes":
			updated.TreatmentCodes = value.(string)
		case "session_marker":
			updated.SessionMarker = value.(string)
		case "notes":
			updated.Notes = value.(string)
		}
	}
	if f.intersectsLocked(&updated, id) {
		return 0, repository.ErrBookingOverlap
	}
	*booking = updated
	return 1, nil
}

func (f *fakeBookingRepo) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return 0, nil
	}
	delete(f.bookings, id)
	return 1, nil
}

type fakeResourceRepo struct {
	resources map[uuid.UUID]*entity.Resource
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{resources: make(map[uuid.UUID]*entity.Resource)}
}

func (f *fakeResourceRepo) add(resource *entity.Resource) *entity.Resource {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	}
	f.resources[resource.ID] = resource
	return resource
}

func (f *fakeResourceRepo) Create(_ *gorm.DB, resource *entity.Resource) error {
	f.add(resource)
	return nil
}

func (f *fakeResourceRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Resource, error) {
	resource, ok := f.resources[id]
	if !ok {
		return nil, nil
	}
	clone := *resource
	return &clone, nil
}

func (f *fakeResourceRepo) FindByKind(_ *gorm.DB, kind entity.ResourceKind) ([]entity.Resource, error) {
	var result []entity.Resource
	for _, r := range f.resources {
		if r.Kind == kind {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeResourceRepo) Update(_ *gorm.DB, resource *entity.Resource) error {
	clone := *resource
	f.resources[resource.ID] = &clone
	return nil
}

func (f *fakeResourceRepo) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := f.resources[id]; !ok {
		return 0, nil
	}
	delete(f.resources, id)
	return 1, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*entity.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (f *fakePatientRepo) add(patient *entity.Patient) *entity.Patient {
	if patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	f.patients[patient.ID] = patient
	return patient
}

func (f *fakePatientRepo) Create(_ *gorm.DB, patient *entity.Patient) error {
	f.add(patient)
	return nil
}

func (f *fakePatientRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	patient, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	clone := *patient
	return &clone, nil
}

func (f *fakePatientRepo) FindByName(_ *gorm.DB, name string) ([]entity.Patient, error) {
	var result []entity.Patient
	for _, p := range f.patients {
		if strings.EqualFold(p.Name, name) {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (f *fakePatientRepo) Search(_ *gorm.DB, query string, limit int) ([]entity.Patient, error) {
	var result []entity.Patient
	for _, p := range f.patients {
		if len(result) >= limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(p.Name), strings.ToLower(query)) ||
			strings.HasPrefix(p.EMRPatientID, query) {
			result = append(result, *p)
		}
	}
	return result, nil
}

type fakeRemarkRepo struct {
	remarks map[uuid.UUID]*entity.DailyRemark
}

func newFakeRemarkRepo() *fakeRemarkRepo {
	return &fakeRemarkRepo{remarks: make(map[uuid.UUID]*entity.DailyRemark)}
}

func (f *fakeRemarkRepo) Create(_ *gorm.DB, remark *entity.DailyRemark) error {
	if remark.ID == uuid.Nil {
		remark.ID = uuid.New()
	}
	clone := *remark
	f.remarks[remark.ID] = &clone
	return nil
}

func (f *fakeRemarkRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.DailyRemark, error) {
	remark, ok := f.remarks[id]
	if !ok {
		return nil, nil
	}
	clone := *remark
	return &clone, nil
}

func (f *fakeRemarkRepo) FindByKindAndDate(_ *gorm.DB, kind entity.ScheduleKind, date time.Time) (*entity.DailyRemark, error) {
	for _, r := range f.remarks {
		if r.ScheduleKind == kind && r.Date.Equal(date) {
			clone := *r
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeRemarkRepo) FindForRange(_ *gorm.DB, kind entity.ScheduleKind, from, to time.Time) ([]entity.DailyRemark, error) {
	var result []entity.DailyRemark
	for _, r := range f.remarks {
		if r.ScheduleKind == kind && !r.Date.Before(from) && !r.Date.After(to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRemarkRepo) Update(_ *gorm.DB, remark *entity.DailyRemark) error {
	clone := *remark
	f.remarks[remark.ID] = &clone
	return nil
}

func (f *fakeRemarkRepo) Delete(_ *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := f.remarks[id]; !ok {
		return 0, nil
	}
	delete(f.remarks, id)
	return 1, nil
}

// nopBroadcaster satisfies the notifier's hub dependency in tests.
type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, []byte) {}

func testGridSpecs() map[entity.ScheduleKind]entity.GridSpec {
	rf, _ := entity.NewGridSpec(entity.ScheduleKindRF, "09:00", "17:00", 30, 1, entity.ResourceKindRoom)
	therapy, _ := entity.NewGridSpec(entity.ScheduleKindTherapy, "09:00", "18:00", 30, 0, entity.ResourceKindTherapist)
	return map[entity.ScheduleKind]entity.GridSpec{
		entity.ScheduleKindRF:      rf,
		entity.ScheduleKindTherapy: therapy,
	}
}
