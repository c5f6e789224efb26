package model

import (
	"encoding/json"
	"sort"
	"time"
)

type SubmissionStatus string

const (
	SubmissionInProgress SubmissionStatus = "in_progress"
	SubmissionCompleted  SubmissionStatus = "completed"
)

// Submission is one municipality's run through the questionnaire. At most one
// in_progress submission exists per user; completion is terminal and freezes
// the score.
// swagger:model Submission
type Submission struct {
	UUIDBase
	UserID            uint             `gorm:"index;type:bigint unsigned" json:"userId"`
	User              *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status            SubmissionStatus `gorm:"size:20;default:'in_progress'" json:"status"`
	CompletedSections json.RawMessage  `gorm:"type:json" json:"completedSections"` // sorted []uint of section ids
	Score             *float64         `json:"score"`                              // null until finalized
	FinalizedAt       *time.Time       `json:"finalizedAt,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

// CompletedSectionIDs decodes the completed-section set. A missing or broken
// JSON value is treated as empty rather than an error.
func (s *Submission) CompletedSectionIDs() []uint {
	if len(s.CompletedSections) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(s.CompletedSections, &ids); err != nil {
		return nil
	}
	return ids
}

// HasCompletedSection reports whether sectionID is locked in.
func (s *Submission) HasCompletedSection(sectionID uint) bool {
	for _, id := range s.CompletedSectionIDs() {
		if id == sectionID {
			return true
		}
	}
	return false
}

// AddCompletedSection inserts sectionID into the set, keeping it sorted and
// deduplicated. Adding an id that is already present is a no-op.
func (s *Submission) AddCompletedSection(sectionID uint) {
	ids := s.CompletedSectionIDs()
	for _, id := range ids {
		if id == sectionID {
			return
		}
	}
	ids = append(ids, sectionID)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	raw, _ := json.Marshal(ids)
	s.CompletedSections = raw
}
