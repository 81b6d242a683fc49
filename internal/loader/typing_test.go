package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalitbbph/TNCC-H/internal/domain"
)

func TestNumericField(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"empty", "", nil},
		{"dash", "-", nil},
		{"garbage", "ส่งตรวจซ้ำ", nil},
		{"plain", "182.5", ptr(182.5)},
		{"padded", "  97 ", ptr(97.0)},
		{"thousands separator", "1,024", ptr(1024.0)},
		{"already float", 24.9, ptr(24.9)},
		{"zero stays zero", "0", ptr(0.0)},
		{"bool is not numeric", true, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := numericField(tc.in)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestGenderField(t *testing.T) {
	assert.Equal(t, "M", genderField("ชาย"))
	assert.Equal(t, "M", genderField("M"))
	assert.Equal(t, "F", genderField("หญิง"))
	assert.Equal(t, "F", genderField("female"))
	assert.Equal(t, "", genderField(""))
	assert.Equal(t, "", genderField("อื่นๆ"))
}

func TestRecordFromRow_CheckmarkResultSurvivesAsMarker(t *testing.T) {
	rec := RecordFromRow(domain.RawRow{
		"employee_id": "E001",
		"chest_xray":  true, // checkmark-only cell coerced upstream
	})
	assert.Equal(t, "ü", rec.ChestXray)
}

func ptr(f float64) *float64 { return &f }
