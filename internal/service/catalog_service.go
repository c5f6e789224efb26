package service

import (
	"context"
	"encoding/json"
	"fmt"
	"muni_assess_backend/internal/config"
	"muni_assess_backend/internal/model"
	"muni_assess_backend/internal/repository"
	"muni_assess_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const catalogCacheKey = "catalog:sections"

// CatalogService serves the questionnaire. The catalog is immutable after
// seeding, so the full section list is cached in redis cache-aside style and
// never invalidated.
type CatalogService struct {
	Repo  *repository.CatalogRepository
	Redis *redis.Client
	TTL   time.Duration
}

func NewCatalogService(repo *repository.CatalogRepository, rdb *redis.Client, cfg *config.Config) *CatalogService {
	return &CatalogService{
		Repo:  repo,
		Redis: rdb,
		TTL:   time.Duration(cfg.Catalog.CacheTTLMinutes) * time.Minute,
	}
}

func (s *CatalogService) AllSections() ([]model.Section, error) {
	ctx := context.Background()

	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var sections []model.Section
			if err := json.Unmarshal([]byte(val), &sections); err == nil {
				return sections, nil
			}
			// Broken cache entry, fall through to the database.
			s.Redis.Del(ctx, catalogCacheKey)
		} else if err != redis.Nil {
			logger.Log.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	sections, err := s.Repo.AllSections()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		raw, _ := json.Marshal(sections)
		if err := s.Redis.Set(ctx, catalogCacheKey, raw, s.TTL).Err(); err != nil {
			logger.Log.Warn("catalog cache write failed", zap.Error(err))
		}
	}

	return sections, nil
}

func (s *CatalogService) SectionByID(id uint) (*model.Section, error) {
	// Section lookups ride the cached full list when available.
	sections, err := s.AllSections()
	if err != nil {
		return s.Repo.SectionByID(id)
	}
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i], nil
		}
	}
	return s.Repo.SectionByID(id)
}

func (s *CatalogService) QuestionByID(id uint) (*model.Question, error) {
	return s.Repo.QuestionByID(id)
}

// WarmCache preloads the catalog at boot so the first request does not pay
// the database round trip.
func (s *CatalogService) WarmCache() {
	if _, err := s.AllSections(); err != nil {
		logger.Log.Warn(fmt.Sprintf("catalog warm-up failed: %v", err))
	}
}
