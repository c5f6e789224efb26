package service

import (
	"errors"
	"fmt"
	"muni_assess_backend/internal/model"
	"muni_assess_backend/internal/scoring"
	"muni_assess_backend/internal/util"
	"muni_assess_backend/pkg/monitoring"
)

// SectionCatalog is the read-only questionnaire the engine scores against.
type SectionCatalog interface {
	AllSections() ([]model.Section, error)
	SectionByID(id uint) (*model.Section, error)
	QuestionByID(id uint) (*model.Question, error)
}

// SubmissionStore persists submission lifecycle state.
type SubmissionStore interface {
	GetOrCreateActive(userID uint) (*model.Submission, error)
	LatestByUser(userID uint) (*model.Submission, error)
	Save(s *model.Submission) error
	Finalize(id string, score *float64) (bool, error)
}

// AnswerStore persists per-question answers with their derived scores.
type AnswerStore interface {
	AnswersBySubmission(submissionID string) ([]model.Answer, error)
	UpsertAnswer(a *model.Answer) error
}

// AssessmentService drives a municipality's submission through its lifecycle:
// answers accumulate while in progress, sections lock in one by one, and the
// final score freezes the submission. All mutations validate their
// preconditions here, not in the UI.
type AssessmentService struct {
	Catalog     SectionCatalog
	Submissions SubmissionStore
	Answers     AnswerStore
}

func NewAssessmentService(catalog SectionCatalog, submissions SubmissionStore, answers AnswerStore) *AssessmentService {
	return &AssessmentService{
		Catalog:     catalog,
		Submissions: submissions,
		Answers:     answers,
	}
}

// activeSubmission resolves the submission a mutating call operates on.
// A finalized latest submission is terminal; only when the user has never
// submitted anything may createIfMissing start a fresh one.
func (s *AssessmentService) activeSubmission(userID uint, createIfMissing bool) (*model.Submission, error) {
	sub, err := s.Submissions.LatestByUser(userID)
	if err != nil {
		if errors.Is(err, util.ErrSubmissionNotFound) && createIfMissing {
			return s.Submissions.GetOrCreateActive(userID)
		}
		return nil, err
	}
	if sub.Status == model.SubmissionCompleted {
		return nil, util.ErrSubmissionFinalized
	}
	return sub, nil
}

// GetOrCreateActive resolves the user's current submission, lazily creating
// one for a user who has never answered anything.
func (s *AssessmentService) GetOrCreateActive(userID uint) (*model.Submission, error) {
	return s.activeSubmission(userID, true)
}

// SaveAnswer validates and scores one raw answer, then upserts it. Rewrites
// of the same question overwrite in place; answers into completed sections
// are rejected.
func (s *AssessmentService) SaveAnswer(userID uint, questionID uint, raw string) (*model.Answer, error) {
	q, err := s.Catalog.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	// Validate before touching submission state so a rejected write leaves
	// nothing behind, not even a lazily created submission.
	score, err := scoring.AnswerScore(scoring.QuestionType(q.QuestionType), q.Weight, q.ScalePoints(), raw)
	if err != nil {
		return nil, err
	}

	sub, err := s.activeSubmission(userID, true)
	if err != nil {
		return nil, err
	}

	if sub.HasCompletedSection(q.SectionID) {
		return nil, fmt.Errorf("%w: section %d", util.ErrSectionLocked, q.SectionID)
	}

	answer := &model.Answer{
		SubmissionID: sub.ID,
		QuestionID:   q.ID,
		SectionID:    q.SectionID,
		Value:        raw,
		Score:        score,
	}
	if err := s.Answers.UpsertAnswer(answer); err != nil {
		return nil, err
	}

	monitoring.AnswersSaved.Inc()
	return answer, nil
}

// CompleteSection locks a fully answered section. Completing an already
// completed section is a no-op, not an error.
func (s *AssessmentService) CompleteSection(userID uint, sectionID uint) (*model.Submission, error) {
	sec, err := s.Catalog.SectionByID(sectionID)
	if err != nil {
		return nil, err
	}

	sub, err := s.activeSubmission(userID, false)
	if err != nil {
		return nil, err
	}

	if sub.HasCompletedSection(sectionID) {
		return sub, nil
	}

	answers, err := s.Answers.AnswersBySubmission(sub.ID)
	if err != nil {
		return nil, err
	}
	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}

	count := 0
	for _, q := range sec.Questions {
		if answered[q.ID] {
			count++
		}
	}
	if count < len(sec.Questions) {
		return nil, &util.IncompleteSectionError{
			SectionID: sectionID,
			Answered:  count,
			Total:     len(sec.Questions),
		}
	}

	sub.AddCompletedSection(sectionID)
	if err := s.Submissions.Save(sub); err != nil {
		return nil, err
	}

	monitoring.SectionsCompleted.Inc()
	return sub, nil
}

// Finalize freezes the submission once every section is completed. The global
// score is computed over the full-questionnaire denominator, so questions
// left unanswered in a section that somehow finished empty-weighted still
// count against the municipality. The status flip is a compare-and-set; a
// concurrent finalize losing the race surfaces as ErrSubmissionFinalized.
func (s *AssessmentService) Finalize(userID uint) (*model.Submission, error) {
	sub, err := s.activeSubmission(userID, false)
	if err != nil {
		return nil, err
	}

	sections, err := s.Catalog.AllSections()
	if err != nil {
		return nil, err
	}

	completed := 0
	for _, sec := range sections {
		if sub.HasCompletedSection(sec.ID) {
			completed++
		}
	}
	if completed < len(sections) {
		return nil, fmt.Errorf("%w: %d of %d sections completed", util.ErrIncompleteSubmission, completed, len(sections))
	}

	answers, err := s.Answers.AnswersBySubmission(sub.ID)
	if err != nil {
		return nil, err
	}
	scores := answerScores(answers)

	results := make([]scoring.SectionResult, 0, len(sections))
	for _, sec := range sections {
		results = append(results, scoring.SectionResult{
			Weight:  sec.Weight,
			Percent: scoring.SectionPercentAll(scores, questionWeights(sec)),
		})
	}
	global := scoring.GlobalScore(results)

	ok, err := s.Submissions.Finalize(sub.ID, global)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrSubmissionFinalized
	}

	sub.Status = model.SubmissionCompleted
	sub.Score = global

	monitoring.SubmissionsFinalized.Inc()
	return sub, nil
}

// ModuleResult is one section's standing within a submission.
type ModuleResult struct {
	SectionID uint             `json:"sectionId"`
	Title     string           `json:"title"`
	Weight    float64          `json:"weight"`
	Answered  int              `json:"answered"`
	Total     int              `json:"total"`
	Completed bool             `json:"completed"`
	Percent   *float64         `json:"percent"`
	Feedback  scoring.Feedback `json:"feedback"`
}

// AssessmentOverview is the progress view of a submission.
type AssessmentOverview struct {
	Submission *model.Submission `json:"submission"`
	Modules    []ModuleResult    `json:"modules"`
	Overall    *float64          `json:"overall"`
	Feedback   scoring.Feedback  `json:"feedback"`
}

// Overview reports per-module progress for the user's latest submission.
// While in progress, percentages follow the preview policy: only answered
// questions enter the denominator, with answered/total reported alongside.
// For a finalized submission the frozen policy of Result applies instead.
func (s *AssessmentService) Overview(userID uint) (*AssessmentOverview, error) {
	sub, err := s.Submissions.LatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if sub.Status == model.SubmissionCompleted {
		return s.Result(userID)
	}
	return s.breakdown(sub, scoring.SectionPercentAnswered, nil)
}

// Result reports the final standing of a finalized submission. Percentages
// here divide by the weight of all questions, matching the policy the global
// score was frozen with.
func (s *AssessmentService) Result(userID uint) (*AssessmentOverview, error) {
	sub, err := s.Submissions.LatestByUser(userID)
	if err != nil {
		return nil, err
	}
	if sub.Status != model.SubmissionCompleted {
		return nil, fmt.Errorf("%w: submission not finalized yet", util.ErrIncompleteSubmission)
	}
	return s.breakdown(sub, scoring.SectionPercentAll, sub.Score)
}

type percentFunc func(scores map[uint]float64, questions []scoring.QuestionWeight) *float64

func (s *AssessmentService) breakdown(sub *model.Submission, percent percentFunc, overall *float64) (*AssessmentOverview, error) {
	sections, err := s.Catalog.AllSections()
	if err != nil {
		return nil, err
	}
	answers, err := s.Answers.AnswersBySubmission(sub.ID)
	if err != nil {
		return nil, err
	}
	scores := answerScores(answers)
	answered := make(map[uint]bool, len(answers))
	for _, a := range answers {
		answered[a.QuestionID] = true
	}

	modules := make([]ModuleResult, 0, len(sections))
	results := make([]scoring.SectionResult, 0, len(sections))
	for _, sec := range sections {
		count := 0
		for _, q := range sec.Questions {
			if answered[q.ID] {
				count++
			}
		}
		pct := percent(scores, questionWeights(sec))
		modules = append(modules, ModuleResult{
			SectionID: sec.ID,
			Title:     sec.Title,
			Weight:    sec.Weight,
			Answered:  count,
			Total:     len(sec.Questions),
			Completed: sub.HasCompletedSection(sec.ID),
			Percent:   pct,
			Feedback:  scoring.Classify(pct),
		})
		results = append(results, scoring.SectionResult{Weight: sec.Weight, Percent: pct})
	}

	if overall == nil {
		overall = scoring.GlobalScore(results)
	}

	return &AssessmentOverview{
		Submission: sub,
		Modules:    modules,
		Overall:    overall,
		Feedback:   scoring.Classify(overall),
	}, nil
}

func answerScores(answers []model.Answer) map[uint]float64 {
	scores := make(map[uint]float64, len(answers))
	for _, a := range answers {
		scores[a.QuestionID] = a.Score
	}
	return scores
}

func questionWeights(sec model.Section) []scoring.QuestionWeight {
	weights := make([]scoring.QuestionWeight, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		weights = append(weights, scoring.QuestionWeight{QuestionID: q.ID, Weight: q.Weight})
	}
	return weights
}
