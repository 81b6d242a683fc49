package schema

// DefaultMapping maps every known raw column spelling to its canonical field
// name: Thai labels, English labels with embedded reference ranges/units, and
// the canonical names themselves (so normalization is idempotent).
//
// Spacing variants of the same label are enumerated individually on purpose.
// A collapse-whitespace heuristic would silently merge unrelated labels, so
// the table lists each observed spelling exactly as it appears in the source
// spreadsheets.
var DefaultMapping = map[string]string{
	// Identity
	"รหัสพนักงาน":        FieldEmployeeID,
	"เลขประจำตัวพนักงาน": FieldEmployeeID,
	"Employee ID":  FieldEmployeeID,
	"employee_id":  FieldEmployeeID,
	"ชื่อ-สกุล":    FieldFullName,
	"ชื่อ-นามสกุล": FieldFullName,
	"ชื่อ สกุล":    FieldFullName,
	"full_name":    FieldFullName,
	"แผนก":         FieldDepartment,
	"ฝ่าย/แผนก":    FieldDepartment,
	"department":   FieldDepartment,
	"สาขา":         FieldBranch,
	"สังกัด/สาขา":  FieldBranch,
	"branch":       FieldBranch,
	"ตำแหน่ง":      FieldPosition,
	"position":     FieldPosition,
	"เพศ":          FieldGender,
	"gender":       FieldGender,
	"อายุ":         FieldAge,
	"อายุ (ปี)":    FieldAge,
	"age":          FieldAge,

	// Lifestyle flags
	"สูบบุหรี่":     FieldSmoke,
	"การสูบบุหรี่":  FieldSmoke,
	"smoke":         FieldSmoke,
	"ดื่มสุรา":      FieldDrink,
	"การดื่มสุรา":   FieldDrink,
	"ดื่มแอลกอฮอล์": FieldDrink,
	"drink": FieldDrink,

	// Vitals
	"น้ำหนัก":             FieldWeight,
	"น้ำหนัก (กก.)":       FieldWeight,
	"Weight (kg)":         FieldWeight,
	"weight":              FieldWeight,
	"ส่วนสูง":             FieldHeight,
	"ส่วนสูง (ซม.)":       FieldHeight,
	"Height (cm)":         FieldHeight,
	"height":              FieldHeight,
	"ดัชนีมวลกาย":         FieldBMI,
	"BMI":                 FieldBMI,
	"BMI 18.5-22.9 kg/m2": FieldBMI,
	"bmi":                 FieldBMI,

	// Labs — English labels carry the lab's reference range and unit, and the
	// 2024 and 2025 exports disagree on spacing before the unit. Both
	// spellings are listed; do not "fix" this with a regexp.
	"FBS 74-106 mg%":  FieldFBS,
	"FBS 74-106  mg%": FieldFBS,
	"น้ำตาลในเลือด":   FieldFBS,
	"fbs":                      FieldFBS,
	"Cholesterol 140-200 mg%":  FieldCholesterol,
	"Cholesterol 140-200  mg%": FieldCholesterol,
	"ไขมันคอเลสเตอรอล": FieldCholesterol,
	"cholesterol":              FieldCholesterol,
	"Triglyceride 30-150 mg%":  FieldTriglyceride,
	"Triglyceride 30-150  mg%": FieldTriglyceride,
	"ไขมันไตรกลีเซอไรด์": FieldTriglyceride,
	"triglyceride":           FieldTriglyceride,
	"HDL-C 40-60 mg%":        FieldHDL,
	"HDL-C 40-60  mg%":       FieldHDL,
	"hdl":                    FieldHDL,
	"LDL-C 0-130 mg%":        FieldLDL,
	"LDL-C 0-130  mg%":       FieldLDL,
	"ldl":                    FieldLDL,
	"Uric acid 2.5-7.0 mg%":  FieldUricAcid,
	"Uric acid 2.5-7.0  mg%": FieldUricAcid,
	"กรดยูริค":               FieldUricAcid,
	"uric_acid":              FieldUricAcid,
	"SGOT 5-40 U/L":          FieldSGOT,
	"SGOT(AST) 5-40 U/L":     FieldSGOT,
	"sgot":                   FieldSGOT,
	"SGPT 5-35 U/L":          FieldSGPT,
	"SGPT(ALT) 5-35 U/L":     FieldSGPT,
	"sgpt":                   FieldSGPT,

	// Test results
	"ผลตรวจสุขภาพโดยรวม": FieldOverallResult,
	"สรุปผลการตรวจ":      FieldOverallResult,
	"overall_result": FieldOverallResult,
	"ผลเอกซเรย์ทรวงอก": FieldChestXray,
	"Chest X-ray": FieldChestXray,
	"chest_xray":  FieldChestXray,
	"ผลสมรรถภาพปอด": FieldSpirometry,
	"Spirometry": FieldSpirometry,
	"spirometry": FieldSpirometry,
	"ผลสมรรถภาพการได้ยิน": FieldHearingTest,
	"Audiogram":    FieldHearingTest,
	"hearing_test": FieldHearingTest,
	"ผลสมรรถภาพการมองเห็น (อาชีวอนามัย)": FieldVisionOccupational,
	"Occupational Vision": FieldVisionOccupational,
	"vision_occupational": FieldVisionOccupational,
	"ผลประเมินสุขภาพจิต": FieldMentalHealthResult,
	"mental_health_result": FieldMentalHealthResult,
	"ผลคัดกรองความผิดปกติการนอน": FieldSleepDisorderResult,
	"sleep_disorder_result": FieldSleepDisorderResult,
	"ผลประเมินความง่วงนอน (ESS)": FieldSleepinessResult,
	"sleepiness_result": FieldSleepinessResult,
}
