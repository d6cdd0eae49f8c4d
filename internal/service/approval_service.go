package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/events"
	"github.com/taeyeong15/marketing-backend/internal/metrics"
	"github.com/taeyeong15/marketing-backend/internal/model"
	"github.com/taeyeong15/marketing-backend/internal/repository"
)

type ApprovalService struct {
	ApprovalRepo repository.ApprovalRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	Events       events.Publisher
	Log          *zap.SugaredLogger

	RejectCommentMinLen int
	MaxPageSize         int
}

type ApprovalRequest struct {
	CampaignID     int    `json:"campaign_id"`
	RequesterID    string `json:"requester_id"`
	ApproverID     string `json:"approver_id"`
	Priority       string `json:"priority"`
	RequestMessage string `json:"request_message"`
}

// SubmitForApproval opens a new approval cycle. The campaign must pass the
// full required-field validation before any row is written; the state guard
// itself runs transactionally in the repository.
func (s *ApprovalService) SubmitForApproval(req ApprovalRequest) (*model.PendingApproval, error) {
	if req.RequesterID == "" {
		return nil, apperrors.NewValidation("requester is required")
	}
	if req.ApproverID == "" {
		return nil, apperrors.NewValidation("approver is required")
	}
	if strings.TrimSpace(req.RequestMessage) == "" {
		return nil, apperrors.NewValidation("request message is required")
	}
	if req.Priority == "" {
		req.Priority = "NORMAL"
	}

	campaign, err := s.CampaignRepo.GetByID(req.CampaignID)
	if err != nil {
		return nil, err
	}
	if err := validateCampaign(campaign, false); err != nil {
		return nil, err
	}

	pa := &model.PendingApproval{
		CampaignID:     req.CampaignID,
		RequesterID:    req.RequesterID,
		ApproverID:     req.ApproverID,
		Priority:       req.Priority,
		RequestMessage: req.RequestMessage,
	}
	prev, err := s.ApprovalRepo.CreateRequest(pa)
	if err != nil {
		return nil, err
	}

	metrics.CampaignTransitionsTotal.WithLabelValues(model.ActionSubmitted).Inc()
	s.Log.Infow("approval requested",
		"approval_id", pa.ID, "campaign_id", pa.CampaignID,
		"previous_status", prev, "approver", pa.ApproverID)

	if err := s.Events.Publish(events.Event{
		Type:       events.TypeApprovalRequested,
		CampaignID: pa.CampaignID,
		ApprovalID: pa.ID,
		Actor:      pa.RequesterID,
		Status:     string(model.ApprovalPending),
		OccurredAt: time.Now(),
	}); err != nil {
		s.Log.Warnw("failed to publish approval event", "approval_id", pa.ID, "error", err)
	}
	return pa, nil
}

// Resolve closes one approval cycle with an approve or reject decision.
// Resolution is terminal: a second call on the same request conflicts.
func (s *ApprovalService) Resolve(id int, status, approverID, comment string) (*model.PendingApproval, error) {
	var to model.ApprovalStatus
	switch model.ApprovalStatus(status) {
	case model.ApprovalApproved:
		to = model.ApprovalApproved
	case model.ApprovalRejected:
		to = model.ApprovalRejected
	default:
		return nil, apperrors.NewValidation("status must be APPROVED or REJECTED")
	}
	if approverID == "" {
		return nil, apperrors.NewValidation("approver is required")
	}

	minLen := s.RejectCommentMinLen
	if minLen < 1 {
		minLen = 10
	}
	if to == model.ApprovalRejected && utf8.RuneCountInString(strings.TrimSpace(comment)) < minLen {
		return nil, apperrors.NewValidation(
			fmt.Sprintf("rejection comment must be a minimum %d characters", minLen))
	}

	pa, prev, err := s.ApprovalRepo.Resolve(id, to, approverID, comment)
	if err != nil {
		return nil, err
	}

	action := model.ActionApproved
	if to == model.ApprovalRejected {
		action = model.ActionRejected
	}
	metrics.ApprovalResolutionsTotal.WithLabelValues(action).Inc()
	metrics.CampaignTransitionsTotal.WithLabelValues(action).Inc()
	s.Log.Infow("approval resolved",
		"approval_id", pa.ID, "campaign_id", pa.CampaignID,
		"result", to, "previous_status", prev, "approver", approverID)

	if err := s.Events.Publish(events.Event{
		Type:       events.TypeApprovalResolved,
		CampaignID: pa.CampaignID,
		ApprovalID: pa.ID,
		Actor:      approverID,
		Status:     string(to),
		OccurredAt: time.Now(),
	}); err != nil {
		s.Log.Warnw("failed to publish approval event", "approval_id", pa.ID, "error", err)
	}
	return pa, nil
}

func (s *ApprovalService) ListPending(p model.ListParams, priority string) ([]*model.PendingCampaign, model.Pagination, error) {
	p = clampParams(p, s.MaxPageSize)
	items, total, err := s.ApprovalRepo.ListPending(p, priority)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	return items, model.NewPagination(p.Page, p.Limit, total), nil
}
