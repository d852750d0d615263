package service

import (
	"context"
	"strings"

	"hospital-scheduling/internal/domain/entity"
	"hospital-scheduling/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PatientMatcher resolves a booking's raw patient-name text against known
// patient records. Matching failure is advisory, never blocking: a booking
// without a match is stored with a null patient id and the raw name.
type PatientMatcher struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientMatcher(db *gorm.DB, log *logrus.Logger, patientRepo repository.PatientRepository) *PatientMatcher {
	return &PatientMatcher{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
	}
}

// Match returns the unique patient whose name equals the normalized raw
// text. Zero or multiple candidates both mean unmatched (nil, nil) - an
// ambiguous name must not be silently attached to the wrong record.
func (m *PatientMatcher) Match(ctx context.Context, rawName string) (*entity.Patient, error) {
	name := NormalizeName(rawName)
	if name == "" {
		return nil, nil
	}

	patients, err := m.patientRepo.FindByName(m.db.WithContext(ctx), name)
	if err != nil {
		m.log.Warnf("Patient match query failed for %q: %+v", name, err)
		return nil, err
	}

	switch len(patients) {
	case 1:
		return &patients[0], nil
	case 0:
		return nil, nil
	default:
		m.log.Infof("Ambiguous patient name %q: %d candidates, leaving unmatched", name, len(patients))
		return nil, nil
	}
}

// NormalizeName cleans up free-text patient names as they arrive from the
// UI or bulk import: surrounding whitespace, a trailing parenthetical
// (visit markers like "(재진)"), and comma/period separators.
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if i := strings.IndexAny(name, "(（"); i > 0 {
		name = name[:i]
	}
	name = strings.NewReplacer(",", " ", ".", " ").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}
