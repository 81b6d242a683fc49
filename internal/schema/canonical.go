package schema

// Canonical field names. Every raw column spelling in the mapping table
// resolves to exactly one of these.
const (
	FieldEmployeeID = "employee_id"
	FieldFullName   = "full_name"
	FieldDepartment = "department"
	FieldBranch     = "branch"
	FieldPosition   = "position"
	FieldGender     = "gender"
	FieldAge        = "age"

	FieldSmoke = "smoke"
	FieldDrink = "drink"

	FieldWeight       = "weight"
	FieldHeight       = "height"
	FieldBMI          = "bmi"
	FieldFBS          = "fbs"
	FieldCholesterol  = "cholesterol"
	FieldTriglyceride = "triglyceride"
	FieldHDL          = "hdl"
	FieldLDL          = "ldl"
	FieldUricAcid     = "uric_acid"
	FieldSGOT         = "sgot"
	FieldSGPT         = "sgpt"

	FieldOverallResult       = "overall_result"
	FieldChestXray           = "chest_xray"
	FieldSpirometry          = "spirometry"
	FieldHearingTest         = "hearing_test"
	FieldVisionOccupational  = "vision_occupational"
	FieldMentalHealthResult  = "mental_health_result"
	FieldSleepDisorderResult = "sleep_disorder_result"
	FieldSleepinessResult    = "sleepiness_result"
)

// FlagFields are the lifestyle flags that go through full boolean coercion.
var FlagFields = []string{FieldSmoke, FieldDrink}

// NumericFields are parsed to float64 by the loader; unparsable cells become
// nil (missing), never zero.
var NumericFields = []string{
	FieldAge,
	FieldWeight,
	FieldHeight,
	FieldBMI,
	FieldFBS,
	FieldCholesterol,
	FieldTriglyceride,
	FieldHDL,
	FieldLDL,
	FieldUricAcid,
	FieldSGOT,
	FieldSGPT,
}

// ResultFields hold free-text per-test status strings.
var ResultFields = []string{
	FieldOverallResult,
	FieldChestXray,
	FieldSpirometry,
	FieldHearingTest,
	FieldVisionOccupational,
	FieldMentalHealthResult,
	FieldSleepDisorderResult,
	FieldSleepinessResult,
}

// CriticalFields define record completeness: a record missing any of these
// (nil numeric, empty string, or a bare dash) counts as incomplete.
var CriticalFields = []string{
	FieldEmployeeID,
	FieldFullName,
	FieldBranch,
	FieldAge,
	FieldBMI,
	FieldOverallResult,
}

func isFlagField(name string) bool {
	for _, f := range FlagFields {
		if f == name {
			return true
		}
	}
	return false
}
