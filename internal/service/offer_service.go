package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/repository"
)

type OfferService struct {
	OfferRepo   repository.OfferRepositoryInterface
	Log         *zap.SugaredLogger
	MaxPageSize int
}

func validateOffer(o *model.Offer) error {
	if strings.TrimSpace(o.Name) == "" {
		return apperrors.NewValidation("offer name is required")
	}
	if o.ValueType != model.OfferValuePercentage && o.ValueType != model.OfferValueFixed {
		return apperrors.NewValidation("value_type must be percentage or fixed")
	}
	if o.Value.IsNegative() {
		return apperrors.NewValidation("offer value must be zero or greater")
	}
	if o.StartDate != nil && o.EndDate != nil && o.StartDate.After(*o.EndDate) {
		return apperrors.NewValidation("start date must not be after end date")
	}
	return nil
}

func (s *OfferService) Create(o *model.Offer, actor string) error {
	if err := validateOffer(o); err != nil {
		return err
	}
	o.CreatedBy = actor
	o.UpdatedBy = actor
	if err := s.OfferRepo.Create(o); err != nil {
		return err
	}
	s.Log.Infow("offer created", "offer_id", o.ID, "actor", actor)
	return nil
}

func (s *OfferService) Update(o *model.Offer, actor string) error {
	if err := validateOffer(o); err != nil {
		return err
	}
	o.UpdatedBy = actor
	return s.OfferRepo.Update(o)
}

func (s *OfferService) Get(id int) (*model.Offer, error) {
	return s.OfferRepo.GetByID(id)
}

func (s *OfferService) List(p model.ListParams, status, offerType string) ([]*model.Offer, model.Pagination, error) {
	p = clampParams(p, s.MaxPageSize)
	items, total, err := s.OfferRepo.List(p, status, offerType)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(p.Page, p.Limit, total), nil
}

// Delete removes the offer unless a non-completed campaign still uses it;
// the guard is transactional in the repository.
func (s *OfferService) Delete(id int, actor string) error {
	if err := s.OfferRepo.Delete(id, actor); err != nil {
		return err
	}
	s.Log.Infow("offer deleted", "offer_id", id, "actor", actor)
	return nil
}

// CanDelete answers the guard question without mutating anything.
func (s *OfferService) CanDelete(id int) (*DeactivationCheck, error) {
	if _, err := s.OfferRepo.GetByID(id); err != nil {
		return nil, err
	}
	blocking, err := s.OfferRepo.BlockingCampaigns(id)
	if err != nil {
		return nil, err
	}
	return &DeactivationCheck{
		Allowed:           len(blocking) == 0,
		BlockingCampaigns: blocking,
	}, nil
}
