package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
)

type ApprovalRepositoryInterface interface {
	CreateRequest(req *model.PendingApproval) (model.CampaignStatus, error)
	Resolve(id int, to model.ApprovalStatus, approverID, comment string) (*model.PendingApproval, model.CampaignStatus, error)
	ListPending(p model.ListParams, priority string) ([]*model.PendingCampaign, int, error)
}

type ApprovalRepository struct {
	DB *sql.DB
}

// CreateRequest opens a new approval cycle: inserts the PENDING row, moves the
// campaign to PENDING_APPROVAL and appends the submit history entry, all in
// one transaction. The submit guard re-runs against the locked row so a
// concurrent submit cannot create a second open cycle.
func (r *ApprovalRepository) CreateRequest(req *model.PendingApproval) (model.CampaignStatus, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var prev model.CampaignStatus
	err = tx.QueryRow(`SELECT status FROM campaigns WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, req.CampaignID).Scan(&prev)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.NewNotFound("campaign", req.CampaignID)
		}
		return "", err
	}
	if !prev.Submittable() {
		return "", apperrors.NewConflict(
			fmt.Sprintf("campaign cannot be submitted in status %s", prev),
			map[string]interface{}{"status": prev},
		)
	}

	req.ApprovalStatus = model.ApprovalPending
	err = tx.QueryRow(`
        INSERT INTO pending_approvals (campaign_id, requester_id, approver_id, priority, request_message, approval_status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW())
        RETURNING id, created_at
    `, req.CampaignID, req.RequesterID, req.ApproverID, req.Priority, req.RequestMessage, req.ApprovalStatus,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(`UPDATE campaigns SET status=$1, updated_by=$2, updated_at=NOW() WHERE id=$3`,
		model.StatusPendingApproval, req.RequesterID, req.CampaignID)
	if err != nil {
		return "", err
	}

	err = insertHistory(tx, &model.CampaignHistory{
		CampaignID:     req.CampaignID,
		ActionType:     model.ActionSubmitted,
		ActionBy:       req.RequesterID,
		PreviousStatus: prev,
		NewStatus:      model.StatusPendingApproval,
		Comments:       req.RequestMessage,
	})
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return prev, nil
}

// Resolve closes one approval cycle. The PENDING check runs on the locked
// approval row, not just the campaign, so two concurrent resolutions cannot
// both pass: the second sees the resolved row and fails with a conflict.
func (r *ApprovalRepository) Resolve(id int, to model.ApprovalStatus, approverID, comment string) (*model.PendingApproval, model.CampaignStatus, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, "", err
	}
	defer tx.Rollback()

	var pa model.PendingApproval
	err = tx.QueryRow(`
        SELECT id, campaign_id, requester_id, approver_id, priority, request_message, approval_status, created_at
        FROM pending_approvals WHERE id=$1 FOR UPDATE
    `, id).Scan(&pa.ID, &pa.CampaignID, &pa.RequesterID, &pa.ApproverID, &pa.Priority, &pa.RequestMessage, &pa.ApprovalStatus, &pa.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", apperrors.NewNotFound("approval request", id)
		}
		return nil, "", err
	}
	if pa.ApprovalStatus != model.ApprovalPending {
		return nil, "", apperrors.NewConflict(
			"approval request already resolved",
			map[string]interface{}{"approval_status": pa.ApprovalStatus},
		)
	}

	var prev model.CampaignStatus
	err = tx.QueryRow(`SELECT status FROM campaigns WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, pa.CampaignID).Scan(&prev)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", apperrors.NewNotFound("campaign", pa.CampaignID)
		}
		return nil, "", err
	}

	next := model.StatusApproved
	action := model.ActionApproved
	if to == model.ApprovalRejected {
		next = model.StatusRejected
		action = model.ActionRejected
	}

	now := time.Now()
	_, err = tx.Exec(`
        UPDATE pending_approvals
        SET approval_status=$1, approver_id=$2, approval_comment=$3, approval_date=$4
        WHERE id=$5
    `, to, approverID, comment, now, id)
	if err != nil {
		return nil, "", err
	}

	_, err = tx.Exec(`UPDATE campaigns SET status=$1, updated_by=$2, updated_at=NOW() WHERE id=$3`, next, approverID, pa.CampaignID)
	if err != nil {
		return nil, "", err
	}

	err = insertHistory(tx, &model.CampaignHistory{
		CampaignID:     pa.CampaignID,
		ActionType:     action,
		ActionBy:       approverID,
		PreviousStatus: prev,
		NewStatus:      next,
		Comments:       comment,
	})
	if err != nil {
		return nil, "", err
	}
	if err := tx.Commit(); err != nil {
		return nil, "", err
	}

	pa.ApprovalStatus = to
	pa.ApproverID = approverID
	pa.ApprovalComment = comment
	pa.ApprovalDate = &now
	return &pa, prev, nil
}

func (r *ApprovalRepository) ListPending(p model.ListParams, priority string) ([]*model.PendingCampaign, int, error) {
	where := ` WHERE a.approval_status='PENDING' AND c.deleted_at IS NULL`
	args := []interface{}{}
	argPos := 1

	if priority != "" {
		where += fmt.Sprintf(" AND a.priority=$%d", argPos)
		args = append(args, priority)
		argPos++
	}
	if p.Search != "" {
		where += fmt.Sprintf(" AND (c.name ILIKE '%%'||$%d||'%%' OR a.request_message ILIKE '%%'||$%d||'%%')", argPos, argPos)
		args = append(args, p.Search)
		argPos++
	}

	query := `
        SELECT a.id, a.campaign_id, a.requester_id, a.approver_id, a.priority, a.request_message,
               a.approval_status, a.approval_comment, a.approval_date, a.created_at,
               c.name, c.type, c.status
        FROM pending_approvals a
        JOIN campaigns c ON c.id = a.campaign_id` + where +
		fmt.Sprintf(" ORDER BY a.id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := []*model.PendingCampaign{}
	for rows.Next() {
		pc := &model.PendingCampaign{}
		var comment sql.NullString
		err := rows.Scan(
			&pc.ID, &pc.CampaignID, &pc.RequesterID, &pc.ApproverID, &pc.Priority, &pc.RequestMessage,
			&pc.ApprovalStatus, &comment, &pc.ApprovalDate, &pc.CreatedAt,
			&pc.CampaignName, &pc.CampaignType, &pc.CampaignStatus,
		)
		if err != nil {
			return nil, 0, err
		}
		pc.ApprovalComment = comment.String
		items = append(items, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM pending_approvals a JOIN campaigns c ON c.id = a.campaign_id` + where
	var total int
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

var _ ApprovalRepositoryInterface = (*ApprovalRepository)(nil)
