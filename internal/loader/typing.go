package loader

import (
	"strconv"
	"strings"

	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/schema"
)

// RecordFromRow types one normalized row into a HealthRecord.
// Numeric cells that fail to parse become nil (missing), never zero and never
// an error: a single malformed lab value must not fail a whole year's load.
func RecordFromRow(row domain.RawRow) domain.HealthRecord {
	return domain.HealthRecord{
		EmployeeID: stringField(row[schema.FieldEmployeeID]),
		FullName:   stringField(row[schema.FieldFullName]),
		Department: stringField(row[schema.FieldDepartment]),
		Branch:     stringField(row[schema.FieldBranch]),
		Position:   stringField(row[schema.FieldPosition]),
		Gender:     genderField(row[schema.FieldGender]),
		Age:        numericField(row[schema.FieldAge]),

		Smoke: flagField(row[schema.FieldSmoke]),
		Drink: flagField(row[schema.FieldDrink]),

		Weight:       numericField(row[schema.FieldWeight]),
		Height:       numericField(row[schema.FieldHeight]),
		BMI:          numericField(row[schema.FieldBMI]),
		FBS:          numericField(row[schema.FieldFBS]),
		Cholesterol:  numericField(row[schema.FieldCholesterol]),
		Triglyceride: numericField(row[schema.FieldTriglyceride]),
		HDL:          numericField(row[schema.FieldHDL]),
		LDL:          numericField(row[schema.FieldLDL]),
		UricAcid:     numericField(row[schema.FieldUricAcid]),
		SGOT:         numericField(row[schema.FieldSGOT]),
		SGPT:         numericField(row[schema.FieldSGPT]),

		OverallResult:       stringField(row[schema.FieldOverallResult]),
		ChestXray:           stringField(row[schema.FieldChestXray]),
		Spirometry:          stringField(row[schema.FieldSpirometry]),
		HearingTest:         stringField(row[schema.FieldHearingTest]),
		VisionOccupational:  stringField(row[schema.FieldVisionOccupational]),
		MentalHealthResult:  stringField(row[schema.FieldMentalHealthResult]),
		SleepDisorderResult: stringField(row[schema.FieldSleepDisorderResult]),
		SleepinessResult:    stringField(row[schema.FieldSleepinessResult]),
	}
}

// numericField parses a cell into *float64. Thousands separators and padding
// are tolerated; anything else unparsable is missing (nil).
func numericField(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(n, ",", ""))
		if s == "" || s == "-" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func stringField(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case bool:
		// A checkmark-only cell was coerced to true upstream; keep it as a
		// non-empty marker so "checked" is distinguishable from "blank".
		if s {
			return schema.Checkmark
		}
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

func flagField(v any) bool {
	// Rows that went through the Normalizer already hold booleans here;
	// coerce again for rows loaded from stores written by older importers.
	return schema.CoerceFlag(v)
}

func genderField(v any) string {
	s := strings.TrimSpace(stringField(v))
	switch strings.ToLower(s) {
	case "m", "male", "ชาย", "นาย":
		return "M"
	case "f", "female", "หญิง", "นาง", "นางสาว":
		return "F"
	default:
		return ""
	}
}
