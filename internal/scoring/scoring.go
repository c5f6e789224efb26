// Package scoring holds the questionnaire arithmetic: per-question scores,
// section percentages and the weighted global score. The package is
// deliberately free of database imports so the service layer and tests can
// consume it without dragging in gorm.
package scoring

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type QuestionType string

const (
	Scale   QuestionType = "scale"
	Boolean QuestionType = "boolean"
	Text    QuestionType = "text"
)

// DefaultScalePoints is the number of points on the standard rating scale.
const DefaultScalePoints = 5

// ErrInvalidAnswer marks raw values that fail type-specific validation.
// Callers match it with errors.Is; the wrapped message carries the detail.
var ErrInvalidAnswer = errors.New("invalid answer")

// AnswerScore validates a raw answer value against the question type and
// returns its weighted score.
//
// Scale answers are integers in [1, scalePoints] and score
// (value/scalePoints)*weight. Boolean answers are the literals "true" or
// "false" and score the full weight or zero; a boolean question therefore
// behaves as a two-point scale over the same weight, commensurable with
// scale questions whose maximum is also the weight. Text answers are
// informational and always score zero.
func AnswerScore(qt QuestionType, weight float64, scalePoints int, raw string) (float64, error) {
	switch qt {
	case Scale:
		if scalePoints <= 0 {
			scalePoints = DefaultScalePoints
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0, fmt.Errorf("%w: scale value %q is not an integer", ErrInvalidAnswer, raw)
		}
		if v < 1 || v > scalePoints {
			return 0, fmt.Errorf("%w: scale value %d outside [1, %d]", ErrInvalidAnswer, v, scalePoints)
		}
		return float64(v) / float64(scalePoints) * weight, nil

	case Boolean:
		switch strings.TrimSpace(raw) {
		case "true":
			return weight, nil
		case "false":
			return 0, nil
		}
		return 0, fmt.Errorf("%w: boolean value must be \"true\" or \"false\", got %q", ErrInvalidAnswer, raw)

	case Text:
		return 0, nil
	}

	return 0, fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, qt)
}

// QuestionWeight is the slice of the catalog the aggregation functions need.
type QuestionWeight struct {
	QuestionID uint
	Weight     float64
}

// SectionPercentAll computes the section percentage over the weight of ALL
// questions in the section, so unanswered questions count against the result.
// This is the policy for finalized scores. A zero total weight yields nil,
// never a division by zero.
func SectionPercentAll(scores map[uint]float64, questions []QuestionWeight) *float64 {
	var sum, total float64
	for _, q := range questions {
		total += q.Weight
		if s, ok := scores[q.QuestionID]; ok {
			sum += s
		}
	}
	if total <= 0 {
		return nil
	}
	pct := sum / total * 100
	return &pct
}

// SectionPercentAnswered computes the section percentage over the weight of
// answered questions only. This is the in-progress preview policy; the
// answered/total ratio is reported separately by the caller. Nil when nothing
// carrying weight has been answered yet.
func SectionPercentAnswered(scores map[uint]float64, questions []QuestionWeight) *float64 {
	var sum, total float64
	for _, q := range questions {
		s, ok := scores[q.QuestionID]
		if !ok {
			continue
		}
		total += q.Weight
		sum += s
	}
	if total <= 0 {
		return nil
	}
	pct := sum / total * 100
	return &pct
}

// SectionResult is one section's contribution to the global score.
type SectionResult struct {
	Weight  float64
	Percent *float64
}

// GlobalScore is the section-weight-weighted mean of the computable section
// percentages. Sections without a percentage are skipped entirely, excluded
// from numerator and denominator both. Nil when no section is computable.
func GlobalScore(sections []SectionResult) *float64 {
	var sum, totalWeight float64
	for _, s := range sections {
		if s.Percent == nil || s.Weight <= 0 {
			continue
		}
		sum += *s.Percent * s.Weight
		totalWeight += s.Weight
	}
	if totalWeight <= 0 {
		return nil
	}
	score := sum / totalWeight
	return &score
}
