package domain

// RawRow is one decoded spreadsheet/store row: source column label -> cell value.
// Values are limited to string / float64 / bool / nil (the natural JSON shapes).
type RawRow map[string]any

// HealthRecord is one employee's single-year checkup snapshot after
// normalization and typing.
// Numeric fields use *float64: nil means "missing / unparsable", which must
// stay distinct from a clinically valid zero.
type HealthRecord struct {
	EmployeeID string   `json:"employee_id"`
	FullName   string   `json:"full_name"`
	Department string   `json:"department"`
	Branch     string   `json:"branch"`
	Position   string   `json:"position"`
	Gender     string   `json:"gender"` // "M" / "F" / ""
	Age        *float64 `json:"age"`

	// Lifestyle flags, already coerced to booleans.
	Smoke bool `json:"smoke"`
	Drink bool `json:"drink"`

	// Vitals and lab values.
	Weight       *float64 `json:"weight"`
	Height       *float64 `json:"height"`
	BMI          *float64 `json:"bmi"`
	FBS          *float64 `json:"fbs"`
	Cholesterol  *float64 `json:"cholesterol"`
	Triglyceride *float64 `json:"triglyceride"`
	HDL          *float64 `json:"hdl"`
	LDL          *float64 `json:"ldl"`
	UricAcid     *float64 `json:"uric_acid"`
	SGOT         *float64 `json:"sgot"`
	SGPT         *float64 `json:"sgpt"`

	// Free-text result strings per test category. Empty string means the
	// test was not performed or the result was not recorded.
	OverallResult       string `json:"overall_result"`
	ChestXray           string `json:"chest_xray"`
	Spirometry          string `json:"spirometry"`
	HearingTest         string `json:"hearing_test"`
	VisionOccupational  string `json:"vision_occupational"`
	MentalHealthResult  string `json:"mental_health_result"`
	SleepDisorderResult string `json:"sleep_disorder_result"`
	SleepinessResult    string `json:"sleepiness_result"`
}
