package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/events"
	"github.com/taeyeong15/marketing-backend/internal/metrics"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	HistoryRepo  repository.HistoryRepositoryInterface
	Events       events.Publisher
	Log          *zap.SugaredLogger
	MaxPageSize  int
}

// CampaignInput is the create/update form body. IsDraft selects validation
// strictness: a draft skips the required-field check but never the sanity
// checks (negative budget, inverted dates).
type CampaignInput struct {
	Name            string          `json:"name"`
	Type            string          `json:"type"`
	Description     string          `json:"description"`
	StartDate       *time.Time      `json:"start_date"`
	EndDate         *time.Time      `json:"end_date"`
	Budget          decimal.Decimal `json:"budget"`
	CustomerGroupID *int            `json:"customer_group_id"`
	Channel         string          `json:"channel"`
	OfferID         *int            `json:"offer_id"`
	ScriptID        *int            `json:"script_id"`
	IsDraft         bool            `json:"is_draft"`
}

// CampaignDetails is the single-campaign view: the entity plus its full
// audit trail.
type CampaignDetails struct {
	Campaign *model.Campaign          `json:"campaign"`
	History  []*model.CampaignHistory `json:"history"`
}

// Required-field labels shown to the (Korean) UI when submission validation
// fails. Order matters: messages list fields in form order.
var requiredFields = []struct {
	label   string
	missing func(c *model.Campaign) bool
}{
	{"캠페인명", func(c *model.Campaign) bool { return strings.TrimSpace(c.Name) == "" }},
	{"캠페인 유형", func(c *model.Campaign) bool { return c.Type == "" }},
	{"시작일", func(c *model.Campaign) bool { return c.StartDate == nil }},
	{"종료일", func(c *model.Campaign) bool { return c.EndDate == nil }},
	{"예산", func(c *model.Campaign) bool { return !c.Budget.IsPositive() }},
	{"채널", func(c *model.Campaign) bool { return c.Channel == "" }},
	{"고객그룹", func(c *model.Campaign) bool { return c.CustomerGroupID == nil }},
	{"스크립트", func(c *model.Campaign) bool { return c.ScriptID == nil }},
}

// validateCampaign runs the form checks. Sanity checks apply to drafts too;
// the required-field sweep only applies once the campaign leaves draft.
func validateCampaign(c *model.Campaign, isDraft bool) error {
	if c.Budget.IsNegative() {
		return apperrors.NewValidation("budget must be zero or greater")
	}
	if c.StartDate != nil && c.EndDate != nil && !c.StartDate.Before(*c.EndDate) {
		return apperrors.NewValidation("start date must be before end date")
	}
	if isDraft {
		return nil
	}

	missing := []string{}
	for _, f := range requiredFields {
		if f.missing(c) {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationWithDetails(
			"required fields missing: "+strings.Join(missing, ", "),
			map[string]interface{}{"missingFields": missing},
		)
	}
	return nil
}

func (s *CampaignService) Create(in CampaignInput, actor string) (*model.Campaign, error) {
	c := in.toModel()
	c.CreatedBy = actor
	c.UpdatedBy = actor

	if err := validateCampaign(c, in.IsDraft); err != nil {
		return nil, err
	}

	c.Status = model.StatusPlanning
	if in.IsDraft {
		c.Status = model.StatusDraft
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}
	metrics.CampaignTransitionsTotal.WithLabelValues(model.ActionCreated).Inc()
	s.Log.Infow("campaign created", "campaign_id", c.ID, "status", c.Status, "actor", actor)
	return c, nil
}

func (s *CampaignService) Update(id int, in CampaignInput, actor string) (*model.Campaign, error) {
	c := in.toModel()
	c.ID = id
	c.UpdatedBy = actor

	if err := validateCampaign(c, in.IsDraft); err != nil {
		return nil, err
	}

	if err := s.CampaignRepo.Update(c, in.IsDraft); err != nil {
		return nil, err
	}
	metrics.CampaignTransitionsTotal.WithLabelValues(model.ActionUpdated).Inc()
	s.Log.Infow("campaign updated", "campaign_id", id, "status", c.Status, "actor", actor)
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) Get(id int) (*CampaignDetails, error) {
	c, err := s.CampaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	history, err := s.HistoryRepo.ListByCampaign(id)
	if err != nil {
		return nil, err
	}
	return &CampaignDetails{Campaign: c, History: history}, nil
}

func (s *CampaignService) List(p model.ListParams, status, campaignType string) ([]*model.Campaign, model.Pagination, error) {
	p = clampParams(p, s.MaxPageSize)
	items, total, err := s.CampaignRepo.List(p, status, campaignType)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(p.Page, p.Limit, total), nil
}

func (s *CampaignService) Delete(id int, actor string) error {
	if err := s.CampaignRepo.Delete(id, actor); err != nil {
		return err
	}
	metrics.CampaignTransitionsTotal.WithLabelValues(model.ActionDeleted).Inc()
	s.Log.Infow("campaign deleted", "campaign_id", id, "actor", actor)
	return s.Events.Publish(events.Event{
		Type:       events.TypeCampaignDeleted,
		CampaignID: id,
		Actor:      actor,
		OccurredAt: time.Now(),
	})
}

// SetStatus drives the operational start/pause/complete transitions.
func (s *CampaignService) SetStatus(id int, to model.CampaignStatus, actor string) (*model.Campaign, error) {
	switch to {
	case model.StatusScheduled, model.StatusRunning, model.StatusPaused, model.StatusCompleted:
	default:
		return nil, apperrors.NewValidation("unsupported operational status: " + string(to))
	}

	prev, err := s.CampaignRepo.SetOperationalStatus(id, to, actor)
	if err != nil {
		return nil, err
	}
	metrics.CampaignTransitionsTotal.WithLabelValues(string(to)).Inc()
	s.Log.Infow("campaign status changed", "campaign_id", id, "from", prev, "to", to, "actor", actor)
	return s.CampaignRepo.GetByID(id)
}

func (in CampaignInput) toModel() *model.Campaign {
	return &model.Campaign{
		Name:            in.Name,
		Type:            in.Type,
		Description:     in.Description,
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		Budget:          in.Budget,
		CustomerGroupID: in.CustomerGroupID,
		Channel:         in.Channel,
		OfferID:         in.OfferID,
		ScriptID:        in.ScriptID,
	}
}

// clampParams normalizes paging input shared by every list operation.
func clampParams(p model.ListParams, maxPageSize int) model.ListParams {
	if maxPageSize < 1 {
		maxPageSize = 50
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return p
}
