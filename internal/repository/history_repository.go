package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/taeyeong15/marketing-backend/internal/model"
)

type HistoryRepositoryInterface interface {
	List(p model.ListParams, actionType string, from, to *time.Time) ([]*model.CampaignHistory, int, error)
	ListByCampaign(campaignID int) ([]*model.CampaignHistory, error)
}

type HistoryRepository struct {
	DB *sql.DB
}

// insertHistory appends one audit row inside the caller's transaction. Every
// state-changing campaign operation goes through here so the ledger and the
// state change commit or roll back together.
func insertHistory(tx *sql.Tx, h *model.CampaignHistory) error {
	query := `
        INSERT INTO campaign_history (campaign_id, action_type, action_by, action_date, previous_status, new_status, comments)
        VALUES ($1, $2, $3, NOW(), $4, $5, $6)
        RETURNING id, action_date
    `
	return tx.QueryRow(query,
		h.CampaignID, h.ActionType, h.ActionBy, h.PreviousStatus, h.NewStatus, h.Comments,
	).Scan(&h.ID, &h.ActionDate)
}

func (r *HistoryRepository) List(p model.ListParams, actionType string, from, to *time.Time) ([]*model.CampaignHistory, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if actionType != "" {
		where += fmt.Sprintf(" AND h.action_type=$%d", argPos)
		args = append(args, actionType)
		argPos++
	}
	if from != nil {
		where += fmt.Sprintf(" AND h.action_date >= $%d", argPos)
		args = append(args, *from)
		argPos++
	}
	if to != nil {
		where += fmt.Sprintf(" AND h.action_date <= $%d", argPos)
		args = append(args, *to)
		argPos++
	}
	if p.Search != "" {
		where += fmt.Sprintf(" AND (c.name ILIKE '%%'||$%d||'%%' OR h.comments ILIKE '%%'||$%d||'%%')", argPos, argPos)
		args = append(args, p.Search)
		argPos++
	}

	query := `
        SELECT h.id, h.campaign_id, c.name, h.action_type, h.action_by, h.action_date, h.previous_status, h.new_status, h.comments
        FROM campaign_history h
        JOIN campaigns c ON c.id = h.campaign_id` + where +
		fmt.Sprintf(" ORDER BY h.action_date DESC, h.id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := []*model.CampaignHistory{}
	for rows.Next() {
		h := &model.CampaignHistory{}
		if err := rows.Scan(&h.ID, &h.CampaignID, &h.CampaignName, &h.ActionType, &h.ActionBy, &h.ActionDate, &h.PreviousStatus, &h.NewStatus, &h.Comments); err != nil {
			return nil, 0, err
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM campaign_history h JOIN campaigns c ON c.id = h.campaign_id` + where
	var total int
	if err := r.DB.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *HistoryRepository) ListByCampaign(campaignID int) ([]*model.CampaignHistory, error) {
	query := `
        SELECT id, campaign_id, action_type, action_by, action_date, previous_status, new_status, comments
        FROM campaign_history
        WHERE campaign_id=$1
        ORDER BY action_date DESC, id DESC
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*model.CampaignHistory{}
	for rows.Next() {
		h := &model.CampaignHistory{}
		if err := rows.Scan(&h.ID, &h.CampaignID, &h.ActionType, &h.ActionBy, &h.ActionDate, &h.PreviousStatus, &h.NewStatus, &h.Comments); err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

var _ HistoryRepositoryInterface = (*HistoryRepository)(nil)
