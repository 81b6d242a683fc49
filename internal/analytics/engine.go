// Package analytics computes cross-year cohort statistics over immutable
// record collections. Every function is pure and stateless: safe to call
// concurrently from any number of request handlers.
package analytics

import (
	"sort"
	"strings"

	"github.com/chalitbbph/TNCC-H/internal/domain"
)

// RatePoint is a predicate rate over one collection.
type RatePoint struct {
	Count       int     `json:"count"`
	Total       int     `json:"total"`
	RatePercent float64 `json:"rate_percent"`
}

// BranchRate is one branch's before/after rate pair.
type BranchRate struct {
	Branch string    `json:"branch"`
	Before RatePoint `json:"before"`
	After  RatePoint `json:"after"`
}

// Direction selects which transition cohort to compute.
type Direction int

const (
	// Onset: newly true in the after year. Absence from the before year
	// counts as "not previously true".
	Onset Direction = iota
	// Discontinued: true in the before year, confirmed false in the after
	// year. Absence from the after year is NOT discontinuation; it needs
	// positive evidence of continued presence with a now-false predicate.
	Discontinued
)

// Continuity reports raw cross-year membership, independent of any predicate.
type Continuity struct {
	InBothYears int `json:"in_both_years"`
	OnlyBefore  int `json:"only_before"`
	OnlyAfter   int `json:"only_after"`
}

// RatePointOf counts predicate hits over a collection. The empty collection
// yields 0%, not NaN: a deliberate display policy for empty year datasets.
func RatePointOf(pred Predicate, records []domain.HealthRecord) RatePoint {
	point := RatePoint{Total: len(records)}
	for _, r := range records {
		if pred(r) {
			point.Count++
		}
	}
	if point.Total > 0 {
		point.RatePercent = float64(point.Count) / float64(point.Total) * 100
	}
	return point
}

// Rate is the percentage form of RatePointOf.
func Rate(pred Predicate, records []domain.HealthRecord) float64 {
	return RatePointOf(pred, records).RatePercent
}

// RateDelta is after minus before, in percentage points. The sign is kept so
// callers can tell improvement from worsening.
func RateDelta(before, after []domain.HealthRecord, pred Predicate) float64 {
	return Rate(pred, after) - Rate(pred, before)
}

// BranchBreakdown computes per-branch before/after rates over the union of
// non-empty branch values seen in either collection. Branches present in only
// one year still appear, with 0/0 on the absent side. Ordered descending by
// after-year rate; ties keep first-seen branch order.
func BranchBreakdown(before, after []domain.HealthRecord, pred Predicate) []BranchRate {
	var branches []string
	seen := map[string]bool{}
	collect := func(records []domain.HealthRecord) {
		for _, r := range records {
			b := strings.TrimSpace(r.Branch)
			if b == "" || seen[b] {
				continue
			}
			seen[b] = true
			branches = append(branches, b)
		}
	}
	collect(before)
	collect(after)

	out := make([]BranchRate, 0, len(branches))
	for _, b := range branches {
		out = append(out, BranchRate{
			Branch: b,
			Before: RatePointOf(pred, filterBranch(before, b)),
			After:  RatePointOf(pred, filterBranch(after, b)),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].After.RatePercent > out[j].After.RatePercent
	})
	return out
}

func filterBranch(records []domain.HealthRecord, branch string) []domain.HealthRecord {
	var out []domain.HealthRecord
	for _, r := range records {
		if strings.TrimSpace(r.Branch) == branch {
			out = append(out, r)
		}
	}
	return out
}

// indexByID keeps the first record per employee_id. Duplicate ids within a
// year are a data-quality anomaly; first match wins, nothing more.
func indexByID(records []domain.HealthRecord) map[string]domain.HealthRecord {
	idx := make(map[string]domain.HealthRecord, len(records))
	for _, r := range records {
		if r.EmployeeID == "" {
			continue
		}
		if _, ok := idx[r.EmployeeID]; !ok {
			idx[r.EmployeeID] = r
		}
	}
	return idx
}

// TransitionCohort matches records across years by employee_id and returns
// the cohort for the requested direction. Returned slices are fresh copies of
// the matched records; the inputs are never mutated.
func TransitionCohort(before, after []domain.HealthRecord, pred Predicate, dir Direction) []domain.HealthRecord {
	var cohort []domain.HealthRecord
	switch dir {
	case Onset:
		prev := indexByID(before)
		for _, r := range after {
			if !pred(r) {
				continue
			}
			if matched, ok := prev[r.EmployeeID]; !ok || !pred(matched) {
				cohort = append(cohort, r)
			}
		}
	case Discontinued:
		next := indexByID(after)
		for _, r := range before {
			if !pred(r) {
				continue
			}
			if matched, ok := next[r.EmployeeID]; ok && !pred(matched) {
				cohort = append(cohort, r)
			}
		}
	}
	return cohort
}

// ContinuityOf counts raw membership across the two years.
func ContinuityOf(before, after []domain.HealthRecord) Continuity {
	beforeIDs := indexByID(before)
	afterIDs := indexByID(after)

	inBoth := 0
	for id := range beforeIDs {
		if _, ok := afterIDs[id]; ok {
			inBoth++
		}
	}
	return Continuity{
		InBothYears: inBoth,
		OnlyBefore:  len(before) - inBoth,
		OnlyAfter:   len(after) - inBoth,
	}
}

// IsIncomplete reports whether any critical field holds the missing sentinel
// (nil numeric, empty string, bare dash). Structural check, independent of
// the behavioral predicates.
func IsIncomplete(r domain.HealthRecord) bool {
	missing := func(s string) bool {
		s = strings.TrimSpace(s)
		return s == "" || s == "-"
	}
	if missing(r.EmployeeID) || missing(r.FullName) || missing(r.Branch) {
		return true
	}
	if r.Age == nil || r.BMI == nil {
		return true
	}
	return missing(r.OverallResult)
}

// IncompleteRecords filters the records failing the critical-field check.
func IncompleteRecords(records []domain.HealthRecord) []domain.HealthRecord {
	var out []domain.HealthRecord
	for _, r := range records {
		if IsIncomplete(r) {
			out = append(out, r)
		}
	}
	return out
}

// Comparison bundles everything the dashboard renders for one field across
// two years. Derived freshly per request, never persisted.
type Comparison struct {
	Field            string                `json:"field"`
	Before           RatePoint             `json:"before"`
	After            RatePoint             `json:"after"`
	DeltaPP          float64               `json:"delta_pp"`
	Branches         []BranchRate          `json:"branches"`
	Onset            []domain.HealthRecord `json:"onset"`
	Discontinued     []domain.HealthRecord `json:"discontinued"`
	Continuity       Continuity            `json:"continuity"`
	IncompleteBefore int                   `json:"incomplete_before"`
	IncompleteAfter  int                   `json:"incomplete_after"`
}

// Compare runs the full cross-year computation for one field.
func Compare(field string, before, after []domain.HealthRecord) (*Comparison, error) {
	pred, err := FieldPredicate(field)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Field:            field,
		Before:           RatePointOf(pred, before),
		After:            RatePointOf(pred, after),
		DeltaPP:          RateDelta(before, after, pred),
		Branches:         BranchBreakdown(before, after, pred),
		Onset:            TransitionCohort(before, after, pred, Onset),
		Discontinued:     TransitionCohort(before, after, pred, Discontinued),
		Continuity:       ContinuityOf(before, after),
		IncompleteBefore: len(IncompleteRecords(before)),
		IncompleteAfter:  len(IncompleteRecords(after)),
	}, nil
}
