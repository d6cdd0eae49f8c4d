package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	Update(c *model.Campaign, isDraft bool) error
	GetByID(id int) (*model.Campaign, error)
	List(p model.ListParams, status, campaignType string) ([]*model.Campaign, int, error)
	Delete(id int, actor string) error
	SetOperationalStatus(id int, to model.CampaignStatus, actor string) (model.CampaignStatus, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, name, type, status, description, start_date, end_date, budget, spent,
        customer_group_id, channel, offer_id, script_id, created_by, updated_by, created_at, updated_at`

func scanCampaign(row interface{ Scan(...interface{}) error }) (*model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(
		&c.ID, &c.Name, &c.Type, &c.Status, &c.Description, &c.StartDate, &c.EndDate,
		&c.Budget, &c.Spent, &c.CustomerGroupID, &c.Channel, &c.OfferID, &c.ScriptID,
		&c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the campaign and its "created" history row in one transaction.
func (r *CampaignRepository) Create(c *model.Campaign) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	c.CreatedAt = time.Now()
	query := `
        INSERT INTO campaigns (name, type, status, description, start_date, end_date, budget, spent,
            customer_group_id, channel, offer_id, script_id, created_by, updated_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13, $14)
        RETURNING id
    `
	err = tx.QueryRow(query,
		c.Name, c.Type, c.Status, c.Description, c.StartDate, c.EndDate, c.Budget, c.Spent,
		c.CustomerGroupID, c.Channel, c.OfferID, c.ScriptID, c.CreatedBy, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return err
	}

	err = insertHistory(tx, &model.CampaignHistory{
		CampaignID:     c.ID,
		ActionType:     model.ActionCreated,
		ActionBy:       c.CreatedBy,
		PreviousStatus: c.Status,
		NewStatus:      c.Status,
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the editable fields. The edit guard runs inside the
// transaction so a concurrent submit/approve cannot slip between check and
// write. Editing a non-draft campaign moves it to EDITING; a draft stays in
// DRAFT unless the full form now passes, which the service signals via isDraft.
func (r *CampaignRepository) Update(c *model.Campaign, isDraft bool) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var prev model.CampaignStatus
	err = tx.QueryRow(`SELECT status FROM campaigns WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, c.ID).Scan(&prev)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.NewNotFound("campaign", c.ID)
		}
		return err
	}
	if !prev.Editable() {
		return apperrors.NewConflict(
			fmt.Sprintf("campaign cannot be edited in status %s", prev),
			map[string]interface{}{"status": prev},
		)
	}

	next := model.StatusEditing
	if prev == model.StatusDraft {
		next = model.StatusPlanning
		if isDraft {
			next = model.StatusDraft
		}
	}

	query := `
        UPDATE campaigns
        SET name=$1, type=$2, status=$3, description=$4, start_date=$5, end_date=$6, budget=$7,
            customer_group_id=$8, channel=$9, offer_id=$10, script_id=$11, updated_by=$12, updated_at=NOW()
        WHERE id=$13
    `
	_, err = tx.Exec(query,
		c.Name, c.Type, next, c.Description, c.StartDate, c.EndDate, c.Budget,
		c.CustomerGroupID, c.Channel, c.OfferID, c.ScriptID, c.UpdatedBy, c.ID,
	)
	if err != nil {
		return err
	}

	err = insertHistory(tx, &model.CampaignHistory{
		CampaignID:     c.ID,
		ActionType:     model.ActionUpdated,
		ActionBy:       c.UpdatedBy,
		PreviousStatus: prev,
		NewStatus:      next,
	})
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.Status = next
	return nil
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1 AND deleted_at IS NULL`
	c, err := scanCampaign(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFound("campaign", id)
		}
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) List(p model.ListParams, status, campaignType string) ([]*model.Campaign, int, error) {
	where := ` WHERE deleted_at IS NULL`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		where += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if campaignType != "" {
		where += fmt.Sprintf(" AND type=$%d", argPos)
		args = append(args, campaignType)
		argPos++
	}
	if p.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE '%%'||$%d||'%%' OR description ILIKE '%%'||$%d||'%%')", argPos, argPos)
		args = append(args, p.Search)
		argPos++
	}

	query := `SELECT ` + campaignColumns + ` FROM campaigns` + where +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	campaigns := []*model.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM campaigns`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// Delete soft-deletes the campaign after the final history row is written.
// Only early states may be removed.
func (r *CampaignRepository) Delete(id int, actor string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status model.CampaignStatus
	err = tx.QueryRow(`SELECT status FROM campaigns WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.NewNotFound("campaign", id)
		}
		return err
	}
	if !status.Deletable() {
		return apperrors.NewConflict(
			fmt.Sprintf("campaign cannot be deleted in status %s", status),
			map[string]interface{}{"status": status},
		)
	}

	err = insertHistory(tx, &model.CampaignHistory{
		CampaignID:     id,
		ActionType:     model.ActionDeleted,
		ActionBy:       actor,
		PreviousStatus: status,
		NewStatus:      status,
	})
	if err != nil {
		return err
	}

	_, err = tx.Exec(`UPDATE campaigns SET deleted_at=NOW(), updated_by=$1, updated_at=NOW() WHERE id=$2`, actor, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// SetOperationalStatus drives the start/pause/complete transitions that live
// outside the approval cycle. Returns the previous status.
func (r *CampaignRepository) SetOperationalStatus(id int, to model.CampaignStatus, actor string) (model.CampaignStatus, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var prev model.CampaignStatus
	err = tx.QueryRow(`SELECT status FROM campaigns WHERE id=$1 AND deleted_at IS NULL FOR UPDATE`, id).Scan(&prev)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", apperrors.NewNotFound("campaign", id)
		}
		return "", err
	}
	if !model.CanTransition(prev, to) {
		return "", apperrors.NewConflict(
			fmt.Sprintf("campaign cannot move from %s to %s", prev, to),
			map[string]interface{}{"status": prev, "requested": to},
		)
	}

	_, err = tx.Exec(`UPDATE campaigns SET status=$1, updated_by=$2, updated_at=NOW() WHERE id=$3`, to, actor, id)
	if err != nil {
		return "", err
	}

	err = insertHistory(tx, &model.CampaignHistory{
		CampaignID:     id,
		ActionType:     operationalAction(to),
		ActionBy:       actor,
		PreviousStatus: prev,
		NewStatus:      to,
	})
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return prev, nil
}

func operationalAction(to model.CampaignStatus) string {
	switch to {
	case model.StatusRunning:
		return model.ActionStarted
	case model.StatusPaused:
		return model.ActionPaused
	case model.StatusCompleted:
		return model.ActionCompleted
	}
	return model.ActionUpdated
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
