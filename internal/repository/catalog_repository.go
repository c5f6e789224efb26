package repository

import (
	"errors"
	"muni_assess_backend/internal/model"
	"muni_assess_backend/internal/util"

	"gorm.io/gorm"
)

// CatalogRepository reads the seeded questionnaire. Sections and questions are
// immutable after seeding, so there are no write methods here.
type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func orderedQuestions(db *gorm.DB) *gorm.DB {
	return db.Order("`order` asc, id asc")
}

func (r *CatalogRepository) AllSections() ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Preload("Questions", orderedQuestions).
		Order("`order` asc, id asc").
		Find(&sections).Error
	return sections, err
}

func (r *CatalogRepository) SectionByID(id uint) (*model.Section, error) {
	var s model.Section
	err := r.DB.Preload("Questions", orderedQuestions).First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogRepository) QuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *CatalogRepository) CountSections() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Section{}).Count(&count).Error
	return count, err
}
