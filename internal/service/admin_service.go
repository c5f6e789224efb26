package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"muni_assess_backend/internal/model"
	"muni_assess_backend/internal/repository"
	"muni_assess_backend/internal/scoring"
	"muni_assess_backend/internal/util"
)

// AdminService aggregates submissions across municipalities for the admin
// panel. Read-only: admins never mutate submissions.
type AdminService struct {
	Submissions *repository.SubmissionRepository
	Users       *repository.UserRepository
}

func NewAdminService(submissions *repository.SubmissionRepository, users *repository.UserRepository) *AdminService {
	return &AdminService{Submissions: submissions, Users: users}
}

// SubmissionRow is one line of the admin listing.
type SubmissionRow struct {
	SubmissionID string       `json:"submissionId"`
	Municipality string       `json:"municipality"`
	Email        string       `json:"email"`
	State        string       `json:"state"`
	Status       string       `json:"status"`
	Score        *float64     `json:"score"`
	Band         scoring.Band `json:"band"`
	CreatedAt    string       `json:"createdAt"`
	FinalizedAt  string       `json:"finalizedAt,omitempty"`
}

func toRow(s model.Submission) SubmissionRow {
	row := SubmissionRow{
		SubmissionID: s.ID,
		Status:       string(s.Status),
		Score:        s.Score,
		Band:         scoring.Classify(s.Score).Band,
		CreatedAt:    s.CreatedAt.Format(util.TimeFormat),
	}
	if s.User != nil {
		row.Municipality = s.User.Name
		row.Email = s.User.Email
		row.State = s.User.State
	}
	if s.FinalizedAt != nil {
		row.FinalizedAt = s.FinalizedAt.Format(util.TimeFormat)
	}
	return row
}

func (s *AdminService) ListSubmissions(page, limit int, status string) ([]SubmissionRow, int64, error) {
	if limit > util.MaxLimit {
		limit = util.MaxLimit
	}
	subs, total, err := s.Submissions.List(page, limit, status)
	if err != nil {
		return nil, 0, err
	}
	rows := make([]SubmissionRow, len(subs))
	for i, sub := range subs {
		rows[i] = toRow(sub)
	}
	return rows, total, nil
}

// Summary is the aggregate picture across all municipalities.
type Summary struct {
	Municipalities int64                `json:"municipalities"`
	Submissions    int64                `json:"submissions"`
	Finalized      int64                `json:"finalized"`
	AverageScore   *float64             `json:"averageScore"`
	AverageBand    scoring.Band         `json:"averageBand"`
	Bands          map[scoring.Band]int `json:"bands"`
}

func (s *AdminService) Summary() (*Summary, error) {
	stats, err := s.Submissions.Stats()
	if err != nil {
		return nil, err
	}
	municipalities, err := s.Users.CountMunicipalities()
	if err != nil {
		return nil, err
	}

	bands := map[scoring.Band]int{}
	page := 1
	for {
		subs, _, err := s.Submissions.List(page, util.MaxLimit, string(model.SubmissionCompleted))
		if err != nil {
			return nil, err
		}
		if len(subs) == 0 {
			break
		}
		for _, sub := range subs {
			bands[scoring.Classify(sub.Score).Band]++
		}
		if len(subs) < util.MaxLimit {
			break
		}
		page++
	}

	return &Summary{
		Municipalities: municipalities,
		Submissions:    stats.Total,
		Finalized:      stats.Finalized,
		AverageScore:   stats.AvgScore,
		AverageBand:    scoring.Classify(stats.AvgScore).Band,
		Bands:          bands,
	}, nil
}

// ExportCSV streams every finalized submission as CSV. One row per
// municipality, newest first.
func (s *AdminService) ExportCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"municipality", "email", "state", "score", "band", "finalized_at"}); err != nil {
		return err
	}

	page := 1
	for {
		subs, _, err := s.Submissions.List(page, util.MaxLimit, string(model.SubmissionCompleted))
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			break
		}
		for _, sub := range subs {
			row := toRow(sub)
			score := ""
			if row.Score != nil {
				score = fmt.Sprintf("%.2f", *row.Score)
			}
			if err := cw.Write([]string{row.Municipality, row.Email, row.State, score, string(row.Band), row.FinalizedAt}); err != nil {
				return err
			}
		}
		if len(subs) < util.MaxLimit {
			break
		}
		page++
	}

	cw.Flush()
	return cw.Error()
}
