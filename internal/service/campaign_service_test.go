package service_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/events"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/service"
)

func intPtr(v int) *int { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func completeInput() service.CampaignInput {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return service.CampaignInput{
		Name:            "가을 프로모션",
		Type:            "DISCOUNT",
		StartDate:       timePtr(start),
		EndDate:         timePtr(start.AddDate(0, 1, 0)),
		Budget:          decimal.NewFromInt(3000000),
		CustomerGroupID: intPtr(1),
		Channel:         "SMS",
		OfferID:         intPtr(1),
		ScriptID:        intPtr(1),
	}
}

func newCampaignService(repo *mockCampaignRepo) (*service.CampaignService, *events.InMemoryPublisher) {
	pub := events.NewInMemoryPublisher()
	return &service.CampaignService{
		CampaignRepo: repo,
		HistoryRepo:  &mockHistoryRepo{},
		Events:       pub,
		Log:          zap.NewNop().Sugar(),
	}, pub
}

func TestCreateCampaign(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	c, err := svc.Create(completeInput(), "kim.mk")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPlanning, c.Status)
	assert.Equal(t, "kim.mk", c.CreatedBy)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateCampaignDraft(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	// Drafts skip the required-field sweep entirely.
	c, err := svc.Create(service.CampaignInput{Name: "메모만 있는 초안", IsDraft: true}, "kim.mk")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, c.Status)
	assert.Equal(t, 1, repo.createCalls)
}

func TestCreateCampaignNegativeBudget(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	in := completeInput()
	in.Budget = decimal.NewFromInt(-100)
	_, err := svc.Create(in, "kim.mk")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "budget")
	assert.Equal(t, 0, repo.createCalls, "invalid campaign must not be persisted")
}

func TestCreateCampaignNegativeBudgetDraft(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	// Sanity checks apply to drafts too.
	in := completeInput()
	in.Budget = decimal.NewFromInt(-100)
	in.IsDraft = true
	_, err := svc.Create(in, "kim.mk")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, repo.createCalls)
}

func TestCreateCampaignInvertedDates(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	in := completeInput()
	in.StartDate, in.EndDate = in.EndDate, in.StartDate
	_, err := svc.Create(in, "kim.mk")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "start date must be before end date")
	assert.Equal(t, 0, repo.createCalls)
}

func TestCreateCampaignMissingFields(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	in := completeInput()
	in.ScriptID = nil
	in.Channel = ""
	_, err := svc.Create(in, "kim.mk")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "required fields missing")
	assert.Contains(t, verr.Message, "스크립트")
	assert.Contains(t, verr.Message, "채널")
	assert.Equal(t, []string{"채널", "스크립트"}, verr.Details["missingFields"])
	assert.Equal(t, 0, repo.createCalls)
}

func TestDeleteCampaignPublishesEvent(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, pub := newCampaignService(repo)

	require.NoError(t, svc.Delete(7, "kim.mk"))
	assert.Equal(t, 1, repo.deleteCalls)

	evs := pub.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.TypeCampaignDeleted, evs[0].Type)
	assert.Equal(t, 7, evs[0].CampaignID)
	assert.Equal(t, "kim.mk", evs[0].Actor)
}

func TestSetStatusRejectsNonOperationalTarget(t *testing.T) {
	repo := &mockCampaignRepo{}
	svc, _ := newCampaignService(repo)

	_, err := svc.SetStatus(1, model.StatusApproved, "kim.mk")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, repo.statusCalls, "approval outcomes are not reachable via status endpoint")
}

func TestSetStatusOperational(t *testing.T) {
	repo := &mockCampaignRepo{
		setOpFn: func(id int, to model.CampaignStatus, actor string) (model.CampaignStatus, error) {
			return model.StatusApproved, nil
		},
		getByIDFn: func(id int) (*model.Campaign, error) {
			return &model.Campaign{ID: id, Status: model.StatusRunning}, nil
		},
	}
	svc, _ := newCampaignService(repo)

	c, err := svc.SetStatus(1, model.StatusRunning, "kim.mk")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRunning, c.Status)
	assert.Equal(t, 1, repo.statusCalls)
}

func TestListClampsPaging(t *testing.T) {
	var got model.ListParams
	repo := &mockCampaignRepo{
		listFn: func(p model.ListParams, status, campaignType string) ([]*model.Campaign, int, error) {
			got = p
			return []*model.Campaign{}, 23, nil
		},
	}
	svc, _ := newCampaignService(repo)

	_, pg, err := svc.List(model.ListParams{Page: 0, Limit: 500}, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 50, got.Limit, "limit capped at default max page size")
	assert.Equal(t, 23, pg.Total)
}
