package repository

import (
	"errors"
	"muni_assess_backend/internal/model"
	"muni_assess_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubmissionRepository persists submissions and their answers.
type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) ActiveByUser(userID uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Where("user_id = ? AND status = ?", userID, model.SubmissionInProgress).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// LatestByUser returns the user's most recent submission regardless of
// status.
func (r *SubmissionRepository) LatestByUser(userID uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetOrCreateActive returns the user's in_progress submission, creating one
// when none exists. The row lock inside the transaction keeps two concurrent
// first answers from spawning two active submissions for the same user.
func (r *SubmissionRepository) GetOrCreateActive(userID uint) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND status = ?", userID, model.SubmissionInProgress).
			First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s = model.Submission{
				UserID:            userID,
				Status:            model.SubmissionInProgress,
				CompletedSections: []byte("[]"),
			}
			return tx.Create(&s).Error
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmissionRepository) Save(s *model.Submission) error {
	return r.DB.Save(s).Error
}

// Finalize flips in_progress to completed and stores the frozen score. The
// status predicate makes the transition a compare-and-set: false means a
// concurrent finalize already won.
func (r *SubmissionRepository) Finalize(id string, score *float64) (bool, error) {
	now := time.Now()
	res := r.DB.Model(&model.Submission{}).
		Where("id = ? AND status = ?", id, model.SubmissionInProgress).
		Updates(map[string]interface{}{
			"status":       model.SubmissionCompleted,
			"score":        score,
			"finalized_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *SubmissionRepository) AnswersBySubmission(submissionID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("submission_id = ?", submissionID).Find(&answers).Error
	return answers, err
}

// UpsertAnswer writes one answer, overwriting any previous row for the same
// (submission, question) pair in place.
func (r *SubmissionRepository) UpsertAnswer(a *model.Answer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "submission_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "score", "updated_at"}),
	}).Create(a).Error
}

// List returns submissions for the admin panel, newest first, with the owning
// municipality preloaded. Status filters when non-empty.
func (r *SubmissionRepository) List(page, limit int, status string) ([]model.Submission, int64, error) {
	var ss []model.Submission
	var total int64
	query := r.DB.Model(&model.Submission{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("User").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&ss).Error
	return ss, total, err
}

// Stats aggregates finalized submissions for the admin summary.
type Stats struct {
	Total     int64
	Finalized int64
	AvgScore  *float64
}

func (r *SubmissionRepository) Stats() (*Stats, error) {
	var st Stats
	if err := r.DB.Model(&model.Submission{}).Count(&st.Total).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.Submission{}).
		Where("status = ?", model.SubmissionCompleted).
		Count(&st.Finalized).Error; err != nil {
		return nil, err
	}
	if st.Finalized > 0 {
		var avg float64
		err := r.DB.Model(&model.Submission{}).
			Where("status = ?", model.SubmissionCompleted).
			Select("AVG(score)").Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		st.AvgScore = &avg
	}
	return &st, nil
}
