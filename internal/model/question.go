package model

import "encoding/json"

type QuestionType string

const (
	QuestionScale   QuestionType = "scale"
	QuestionBoolean QuestionType = "boolean"
	QuestionText    QuestionType = "text"
)

// Question belongs to a section. Options holds the ordered scale labels as a
// JSON string array; empty means the default 5-point scale.
// swagger:model Question
type Question struct {
	BaseModel
	SectionID    uint            `gorm:"index;type:bigint unsigned" json:"sectionId"`
	QuestionType QuestionType    `gorm:"size:20;not null" json:"questionType"`
	Text         string          `gorm:"type:text;not null" json:"text"`
	Options      json.RawMessage `gorm:"type:json" json:"options,omitempty"`
	Weight       float64         `gorm:"default:0" json:"weight"`
	Order        int             `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// DefaultScaleLabels is used when a scale question carries no custom options.
var DefaultScaleLabels = []string{"Never", "Rarely", "Sometimes", "Often", "Always"}

// ScalePoints returns the number of answer points presented for the question.
func (q *Question) ScalePoints() int {
	if len(q.Options) == 0 {
		return len(DefaultScaleLabels)
	}
	var labels []string
	if err := json.Unmarshal(q.Options, &labels); err != nil || len(labels) == 0 {
		return len(DefaultScaleLabels)
	}
	return len(labels)
}
