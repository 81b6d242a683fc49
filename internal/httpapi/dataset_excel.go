package httpapi

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chalitbbph/TNCC-H/internal/domain"
	"github.com/chalitbbph/TNCC-H/internal/schema"
)

// ParseWorkbook decodes the first sheet of an uploaded XLSX into raw rows.
// Row 1 is the header; header cells become the raw column keys exactly as
// spelled (the Normalizer owns the meaning of those spellings, not this
// decoder). Rows with no non-empty cell are skipped.
func ParseWorkbook(r io.Reader) ([]domain.RawRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	header := rows[0]
	var out []domain.RawRow
	for _, cells := range rows[1:] {
		row := make(domain.RawRow, len(header))
		empty := true
		for i, key := range header {
			if strings.TrimSpace(key) == "" {
				continue
			}
			var val string
			if i < len(cells) {
				val = strings.TrimSpace(cells[i])
			}
			row[key] = val
			if val != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// exportHeader: canonical column order for dataset exports.
var exportHeader = []string{
	schema.FieldEmployeeID,
	schema.FieldFullName,
	schema.FieldDepartment,
	schema.FieldBranch,
	schema.FieldPosition,
	schema.FieldGender,
	schema.FieldAge,
	schema.FieldSmoke,
	schema.FieldDrink,
	schema.FieldWeight,
	schema.FieldHeight,
	schema.FieldBMI,
	schema.FieldFBS,
	schema.FieldCholesterol,
	schema.FieldTriglyceride,
	schema.FieldHDL,
	schema.FieldLDL,
	schema.FieldUricAcid,
	schema.FieldSGOT,
	schema.FieldSGPT,
	schema.FieldOverallResult,
	schema.FieldChestXray,
	schema.FieldSpirometry,
	schema.FieldHearingTest,
	schema.FieldVisionOccupational,
	schema.FieldMentalHealthResult,
	schema.FieldSleepDisorderResult,
	schema.FieldSleepinessResult,
}

// ExportWorkbook renders typed records as an XLSX with canonical headers.
func ExportWorkbook(year string, records []domain.HealthRecord) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() before WriteTo: the file must stay open.

	sheetName := "health_" + year
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, name := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header style: %w", err)
		}
	}

	for rowIdx, rec := range records {
		values := recordCells(rec)
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if v == nil {
				continue // missing stays blank, never zero
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				f.Close()
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func recordCells(r domain.HealthRecord) []any {
	num := func(p *float64) any {
		if p == nil {
			return nil
		}
		return *p
	}
	return []any{
		r.EmployeeID, r.FullName, r.Department, r.Branch, r.Position,
		r.Gender, num(r.Age),
		r.Smoke, r.Drink,
		num(r.Weight), num(r.Height), num(r.BMI), num(r.FBS),
		num(r.Cholesterol), num(r.Triglyceride), num(r.HDL), num(r.LDL),
		num(r.UricAcid), num(r.SGOT), num(r.SGPT),
		r.OverallResult, r.ChestXray, r.Spirometry, r.HearingTest,
		r.VisionOccupational, r.MentalHealthResult,
		r.SleepDisorderResult, r.SleepinessResult,
	}
}
