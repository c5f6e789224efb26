package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerScoreScale(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		points int
		raw    string
		want   float64
	}{
		{"max value scores full weight", 1, 5, "5", 1.0},
		{"mid value", 1, 5, "3", 0.6},
		{"min value", 2, 5, "1", 0.4},
		{"zero weight", 0, 5, "5", 0},
		{"custom four point scale", 2, 4, "4", 2.0},
		{"whitespace tolerated", 1, 5, " 4 ", 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AnswerScore(Scale, tt.weight, tt.points, tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAnswerScoreScaleBounds(t *testing.T) {
	// Every valid value stays within [0, weight].
	for _, w := range []float64{0, 0.5, 1, 3, 10} {
		for v := 1; v <= 5; v++ {
			got, err := AnswerScore(Scale, w, 5, string(rune('0'+v)))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, w)
		}
	}
}

func TestAnswerScoreScaleInvalid(t *testing.T) {
	for _, raw := range []string{"", "abc", "3.5", "0", "6", "-1", "true"} {
		_, err := AnswerScore(Scale, 1, 5, raw)
		assert.ErrorIs(t, err, ErrInvalidAnswer, "raw=%q", raw)
	}
}

func TestAnswerScoreBoolean(t *testing.T) {
	got, err := AnswerScore(Boolean, 2, 0, "true")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got)

	got, err = AnswerScore(Boolean, 2, 0, "false")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	for _, raw := range []string{"", "yes", "TRUE", "1"} {
		_, err := AnswerScore(Boolean, 2, 0, raw)
		assert.ErrorIs(t, err, ErrInvalidAnswer, "raw=%q", raw)
	}
}

func TestAnswerScoreText(t *testing.T) {
	got, err := AnswerScore(Text, 5, 0, "anything at all")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = AnswerScore(Text, 5, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestAnswerScoreUnknownType(t *testing.T) {
	_, err := AnswerScore("essay", 1, 5, "x")
	assert.ErrorIs(t, err, ErrInvalidAnswer)
}

func TestSectionPercentAll(t *testing.T) {
	questions := []QuestionWeight{{1, 1}, {2, 1}, {3, 1}}

	// Two of three answered with full scores: unanswered weight still counts.
	scores := map[uint]float64{1: 1.0, 2: 1.0}
	pct := SectionPercentAll(scores, questions)
	require.NotNil(t, pct)
	assert.InDelta(t, 66.666, *pct, 0.01)

	// All answered.
	scores[3] = 1.0
	pct = SectionPercentAll(scores, questions)
	require.NotNil(t, pct)
	assert.InDelta(t, 100, *pct, 1e-9)
}

func TestSectionPercentAllZeroWeight(t *testing.T) {
	assert.Nil(t, SectionPercentAll(nil, nil))
	assert.Nil(t, SectionPercentAll(map[uint]float64{1: 0}, []QuestionWeight{{1, 0}, {2, 0}}))
}

func TestSectionPercentAnswered(t *testing.T) {
	questions := []QuestionWeight{{1, 1}, {2, 1}, {3, 1}}

	// Unanswered questions are excluded from the preview denominator.
	scores := map[uint]float64{1: 1.0, 2: 0.6}
	pct := SectionPercentAnswered(scores, questions)
	require.NotNil(t, pct)
	assert.InDelta(t, 80, *pct, 1e-9)

	assert.Nil(t, SectionPercentAnswered(nil, questions))
}

func TestGlobalScore(t *testing.T) {
	p80, p50 := 80.0, 50.0

	// (80*20 + 50*30) / 50 = 62
	got := GlobalScore([]SectionResult{
		{Weight: 20, Percent: &p80},
		{Weight: 30, Percent: &p50},
	})
	require.NotNil(t, got)
	assert.InDelta(t, 62, *got, 1e-9)
}

func TestGlobalScoreSkipsUncomputableSections(t *testing.T) {
	p80 := 80.0

	// The nil section must not drag the average toward zero.
	got := GlobalScore([]SectionResult{
		{Weight: 20, Percent: &p80},
		{Weight: 30, Percent: nil},
	})
	require.NotNil(t, got)
	assert.InDelta(t, 80, *got, 1e-9)

	assert.Nil(t, GlobalScore(nil))
	assert.Nil(t, GlobalScore([]SectionResult{{Weight: 10, Percent: nil}}))
}
