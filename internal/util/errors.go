package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrSectionNotFound      = errors.New("section not found")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrSectionLocked        = errors.New("section already completed, answers are locked")
	ErrSubmissionFinalized  = errors.New("submission already finalized")
	ErrIncompleteSection    = errors.New("section has unanswered questions")
	ErrIncompleteSubmission = errors.New("not all sections completed")
)

// IncompleteSectionError reports how far along a section is when its
// completion is rejected. Matches ErrIncompleteSection under errors.Is.
type IncompleteSectionError struct {
	SectionID uint
	Answered  int
	Total     int
}

func (e *IncompleteSectionError) Error() string {
	return fmt.Sprintf("section %d incomplete: %d of %d questions answered", e.SectionID, e.Answered, e.Total)
}

func (e *IncompleteSectionError) Unwrap() error {
	return ErrIncompleteSection
}
