package model

// Answer stores the raw value and the derived score for one question of one
// submission. The composite unique index makes a resubmission overwrite
// instead of duplicating.
// swagger:model Answer
type Answer struct {
	UUIDBase
	SubmissionID string  `gorm:"index:idx_submission_question,unique;type:varchar(36)" json:"submissionId"`
	QuestionID   uint    `gorm:"index:idx_submission_question,unique;type:bigint unsigned" json:"questionId"`
	SectionID    uint    `gorm:"index;type:bigint unsigned" json:"sectionId"` // denormalized for section-lock checks
	Value        string  `gorm:"type:text" json:"value"`
	Score        float64 `gorm:"default:0" json:"score"` // derived, never user-supplied
}

func (Answer) TableName() string {
	return "answers"
}
