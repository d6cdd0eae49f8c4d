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

func completeCampaign(status model.CampaignStatus) *model.Campaign {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return &model.Campaign{
		ID:              1,
		Name:            "가을 프로모션",
		Type:            "DISCOUNT",
		Status:          status,
		StartDate:       &start,
		EndDate:         &end,
		Budget:          decimal.NewFromInt(3000000),
		CustomerGroupID: intPtr(1),
		Channel:         "SMS",
		OfferID:         intPtr(1),
		ScriptID:        intPtr(1),
	}
}

func newApprovalService(approvals *mockApprovalRepo, campaigns *mockCampaignRepo) (*service.ApprovalService, *events.InMemoryPublisher) {
	pub := events.NewInMemoryPublisher()
	return &service.ApprovalService{
		ApprovalRepo: approvals,
		CampaignRepo: campaigns,
		Events:       pub,
		Log:          zap.NewNop().Sugar(),
	}, pub
}

func submitRequest() service.ApprovalRequest {
	return service.ApprovalRequest{
		CampaignID:     1,
		RequesterID:    "kim.mk",
		ApproverID:     "lee.lead",
		RequestMessage: "가을 프로모션 승인 요청드립니다",
	}
}

func TestSubmitForApproval(t *testing.T) {
	approvals := &mockApprovalRepo{}
	campaigns := &mockCampaignRepo{
		getByIDFn: func(id int) (*model.Campaign, error) {
			return completeCampaign(model.StatusPlanning), nil
		},
	}
	svc, pub := newApprovalService(approvals, campaigns)

	pa, err := svc.SubmitForApproval(submitRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, approvals.createCalls)
	assert.Equal(t, "NORMAL", pa.Priority, "priority defaults when omitted")

	evs := pub.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.TypeApprovalRequested, evs[0].Type)
	assert.Equal(t, pa.CampaignID, evs[0].CampaignID)
	assert.Equal(t, "kim.mk", evs[0].Actor)
}

func TestSubmitIncompleteCampaign(t *testing.T) {
	c := completeCampaign(model.StatusPlanning)
	c.ScriptID = nil

	approvals := &mockApprovalRepo{}
	campaigns := &mockCampaignRepo{
		getByIDFn: func(id int) (*model.Campaign, error) { return c, nil },
	}
	svc, pub := newApprovalService(approvals, campaigns)

	_, err := svc.SubmitForApproval(submitRequest())

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "스크립트")
	assert.Equal(t, 0, approvals.createCalls, "incomplete campaign must not open an approval cycle")
	assert.Empty(t, pub.Events())
}

func TestSubmitRequiresApproverAndMessage(t *testing.T) {
	approvals := &mockApprovalRepo{}
	svc, _ := newApprovalService(approvals, &mockCampaignRepo{})

	req := submitRequest()
	req.ApproverID = ""
	_, err := svc.SubmitForApproval(req)
	assert.Error(t, err)

	req = submitRequest()
	req.RequestMessage = "   "
	_, err = svc.SubmitForApproval(req)
	assert.Error(t, err)

	assert.Equal(t, 0, approvals.createCalls)
}

func TestResolveApprove(t *testing.T) {
	approvals := &mockApprovalRepo{}
	svc, pub := newApprovalService(approvals, &mockCampaignRepo{})

	pa, err := svc.Resolve(5, "APPROVED", "lee.lead", "")
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, pa.ApprovalStatus)
	assert.Equal(t, 1, approvals.resolveCalls)

	evs := pub.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, events.TypeApprovalResolved, evs[0].Type)
	assert.Equal(t, "APPROVED", evs[0].Status)
}

func TestResolveRejectShortComment(t *testing.T) {
	approvals := &mockApprovalRepo{}
	svc, pub := newApprovalService(approvals, &mockCampaignRepo{})

	_, err := svc.Resolve(5, "REJECTED", "lee.lead", "짧은 사유")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "minimum 10 characters")
	assert.Equal(t, 0, approvals.resolveCalls, "short comment must not touch the approval row")
	assert.Empty(t, pub.Events())
}

func TestResolveRejectCommentCountsRunes(t *testing.T) {
	approvals := &mockApprovalRepo{}
	svc, _ := newApprovalService(approvals, &mockCampaignRepo{})

	// 10 Korean characters, well under 10 bytes-per-rune naive counting.
	pa, err := svc.Resolve(5, "REJECTED", "lee.lead", "예산 초과로 반려합니다")
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, pa.ApprovalStatus)
	assert.Equal(t, 1, approvals.resolveCalls)
}

func TestResolveInvalidStatus(t *testing.T) {
	approvals := &mockApprovalRepo{}
	svc, _ := newApprovalService(approvals, &mockCampaignRepo{})

	_, err := svc.Resolve(5, "PENDING", "lee.lead", "")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, approvals.resolveCalls)
}

func TestResolveConflictPassesThrough(t *testing.T) {
	conflict := apperrors.NewConflict("approval request already resolved", map[string]interface{}{
		"approval_status": "APPROVED",
	})
	approvals := &mockApprovalRepo{
		resolveFn: func(id int, to model.ApprovalStatus, approverID, comment string) (*model.PendingApproval, model.CampaignStatus, error) {
			return nil, "", conflict
		},
	}
	svc, pub := newApprovalService(approvals, &mockCampaignRepo{})

	_, err := svc.Resolve(5, "APPROVED", "lee.lead", "")

	var cerr *apperrors.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Empty(t, pub.Events(), "failed resolution must not publish")
}

func TestResolveCustomMinLength(t *testing.T) {
	approvals := &mockApprovalRepo{}
	svc, _ := newApprovalService(approvals, &mockCampaignRepo{})
	svc.RejectCommentMinLen = 5

	_, err := svc.Resolve(5, "REJECTED", "lee.lead", "사유없음")
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "minimum 5 characters")

	_, err = svc.Resolve(5, "REJECTED", "lee.lead", "예산이 초과됨")
	assert.NoError(t, err)
}
