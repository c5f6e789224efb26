package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyThresholds(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name string
		pct  *float64
		want Band
	}{
		{"nil is pending", nil, BandPending},
		{"just under excellent", f(79.999), BandIntermediate},
		{"excellent boundary", f(80), BandExcellent},
		{"just under intermediate", f(49.999), BandBad},
		{"intermediate boundary", f(50), BandIntermediate},
		{"zero", f(0), BandBad},
		{"full score", f(100), BandExcellent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.pct).Band)
		})
	}
}

func TestClassifyFeedbackPayload(t *testing.T) {
	p := 90.0
	fb := Classify(&p)
	assert.Equal(t, BandExcellent, fb.Band)
	assert.Equal(t, "green", fb.Icon)
	assert.NotEmpty(t, fb.Message)
	assert.NotEmpty(t, fb.Recommendations)

	pending := Classify(nil)
	assert.Equal(t, "gray", pending.Icon)
	assert.Empty(t, pending.Recommendations)
}
