package schema

import (
	"strings"

	"go.uber.org/zap"

	"github.com/chalitbbph/TNCC-H/internal/domain"
)

// Checkmark is the glyph source spreadsheets use for "checked / present".
// It is a Wingdings checkmark that survives export as the letter "ü".
const Checkmark = "ü"

// ThaiNegationPrefix marks negated answers ("ไม่สูบ" = does not smoke).
const ThaiNegationPrefix = "ไม่"

// falsyVocabulary: textual values treated as false for lifestyle flags,
// matched case-insensitively.
var falsyVocabulary = map[string]bool{
	"false": true,
	"no":    true,
	"0":     true,
	"-":     true,
	"n/a":   true,
	"none":  true,
}

// Normalizer renames raw column keys to canonical field names and coerces
// lifestyle flags to booleans. The mapping is injected at construction and
// never mutated, so one Normalizer is safe for concurrent use.
type Normalizer struct {
	mapping map[string]string
	logger  *zap.Logger
}

// NewNormalizer creates a Normalizer over the given raw->canonical mapping.
// Pass DefaultMapping for the production table.
func NewNormalizer(mapping map[string]string, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{mapping: mapping, logger: logger}
}

// Normalize maps every row's keys onto canonical field names and coerces flag
// values. Order- and length-preserving: one output row per input row, rows
// with zero recognized keys included.
func (n *Normalizer) Normalize(rows []domain.RawRow) []domain.RawRow {
	out := make([]domain.RawRow, 0, len(rows))
	unknown := map[string]int{}
	for _, row := range rows {
		out = append(out, n.normalizeRow(row, unknown))
	}
	if len(unknown) > 0 {
		// Unknown columns are passed through renamed-as-is; logged for
		// visibility, never an error.
		for key, count := range unknown {
			n.logger.Debug("unmapped source column",
				zap.String("column", key),
				zap.Int("rows", count),
			)
		}
		n.logger.Info("normalize: unmapped source columns passed through",
			zap.Int("distinct_columns", len(unknown)),
		)
	}
	return out
}

func (n *Normalizer) normalizeRow(row domain.RawRow, unknown map[string]int) domain.RawRow {
	out := make(domain.RawRow, len(row))
	for key, value := range row {
		canonical, ok := n.mapping[key]
		if !ok {
			canonical = key
			unknown[key]++
		}
		if isFlagField(canonical) {
			out[canonical] = CoerceFlag(value)
			continue
		}
		// The checkmark glyph means "checked" on any column, not just flags.
		if s, isStr := value.(string); isStr && strings.TrimSpace(s) == Checkmark {
			out[canonical] = true
			continue
		}
		out[canonical] = value
	}
	return out
}

// CoerceFlag folds the varied source encodings of a lifestyle flag into a
// boolean. Total over string/bool/number/nil inputs: always true or false,
// never an error.
//
// Priority order matters: the Thai negation prefix must win over the
// "any non-empty string is true" fallback.
func CoerceFlag(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return false
		}
		if s == Checkmark {
			return true
		}
		if strings.HasPrefix(s, ThaiNegationPrefix) {
			return false
		}
		if falsyVocabulary[strings.ToLower(s)] {
			return false
		}
		return true
	case float64:
		return v != 0
	case int:
		return v != 0
	default:
		// Unknown shape with a non-nil value: treat as a filled-in cell.
		return true
	}
}
