package service

import (
	"time"

	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/repository"
)

type HistoryService struct {
	HistoryRepo repository.HistoryRepositoryInterface
	MaxPageSize int
}

func (s *HistoryService) List(p model.ListParams, actionType string, from, to *time.Time) ([]*model.CampaignHistory, model.Pagination, error) {
	p = clampParams(p, s.MaxPageSize)
	items, total, err := s.HistoryRepo.List(p, actionType, from, to)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(p.Page, p.Limit, total), nil
}
