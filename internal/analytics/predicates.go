package analytics

import (
	"fmt"
	"strings"

	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/schema"
)

// Predicate is a boolean condition over a single record.
type Predicate func(domain.HealthRecord) bool

// NormalMarker / AbnormalMarker are the status vocabulary of the source
// checkup reports. AbnormalMarker contains NormalMarker as a substring, so
// the abnormal check must run first.
const (
	NormalMarker   = "ปกติ"
	AbnormalMarker = "ผิดปกติ"
)

// ResultIsAbnormal classifies a free-text result string.
// Empty means "not tested" and is not abnormal. Anything that is neither
// empty nor the plain normal marker counts as abnormal: advisory strings
// ("ควรพบแพทย์" etc.) default to abnormal on purpose, a conservative bias
// for a screening dashboard.
func ResultIsAbnormal(result string) bool {
	s := strings.TrimSpace(result)
	if s == "" || s == "-" {
		return false
	}
	if strings.Contains(s, AbnormalMarker) {
		return true
	}
	if s == NormalMarker {
		return false
	}
	return true
}

// Smokes reports the smoking flag.
func Smokes(r domain.HealthRecord) bool { return r.Smoke }

// Drinks reports the drinking flag.
func Drinks(r domain.HealthRecord) bool { return r.Drink }

// resultSelectors maps canonical result fields to their accessors.
var resultSelectors = map[string]func(domain.HealthRecord) string{
	schema.FieldOverallResult:       func(r domain.HealthRecord) string { return r.OverallResult },
	schema.FieldChestXray:           func(r domain.HealthRecord) string { return r.ChestXray },
	schema.FieldSpirometry:          func(r domain.HealthRecord) string { return r.Spirometry },
	schema.FieldHearingTest:         func(r domain.HealthRecord) string { return r.HearingTest },
	schema.FieldVisionOccupational:  func(r domain.HealthRecord) string { return r.VisionOccupational },
	schema.FieldMentalHealthResult:  func(r domain.HealthRecord) string { return r.MentalHealthResult },
	schema.FieldSleepDisorderResult: func(r domain.HealthRecord) string { return r.SleepDisorderResult },
	schema.FieldSleepinessResult:    func(r domain.HealthRecord) string { return r.SleepinessResult },
}

// FieldPredicate resolves a canonical field name to its predicate: flag
// fields test the flag itself, result fields test abnormality.
func FieldPredicate(field string) (Predicate, error) {
	switch field {
	case schema.FieldSmoke:
		return Smokes, nil
	case schema.FieldDrink:
		return Drinks, nil
	}
	if sel, ok := resultSelectors[field]; ok {
		return func(r domain.HealthRecord) bool { return ResultIsAbnormal(sel(r)) }, nil
	}
	return nil, fmt.Errorf("no predicate for field %q", field)
}
