package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
)

type OfferRepositoryInterface interface {
	Create(o *model.Offer) error
	Update(o *model.Offer) error
	GetByID(id int) (*model.Offer, error)
	List(p model.ListParams, status, offerType string) ([]*model.Offer, int, error)
	Delete(id int, actor string) error
	BlockingCampaigns(offerID int) ([]model.BlockingCampaign, error)
}

type OfferRepository struct {
	DB *sql.DB
}

const offerColumns = `id, name, type, value, value_type, status, start_date, end_date, max_usage,
        usage_count, conditions, target_products, use_yn, created_by, updated_by, created_at, updated_at`

func (r *OfferRepository) Create(o *model.Offer) error {
	conditions, err := json.Marshal(o.Conditions)
	if err != nil {
		return err
	}
	if o.Status == "" {
		o.Status = model.OfferStatusInactive
	}
	o.UseYn = "Y"
	query := `
        INSERT INTO offers (name, type, value, value_type, status, start_date, end_date, max_usage, conditions, target_products, use_yn, created_by, updated_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'Y', $11, $11, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query,
		o.Name, o.Type, o.Value, o.ValueType, o.Status, o.StartDate, o.EndDate, o.MaxUsage,
		conditions, pq.Array(o.TargetProducts), o.CreatedBy,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *OfferRepository) Update(o *model.Offer) error {
	conditions, err := json.Marshal(o.Conditions)
	if err != nil {
		return err
	}
	query := `
        UPDATE offers
        SET name=$1, type=$2, value=$3, value_type=$4, status=$5, start_date=$6, end_date=$7,
            max_usage=$8, conditions=$9, target_products=$10, updated_by=$11, updated_at=NOW()
        WHERE id=$12 AND use_yn='Y'
    `
	res, err := r.DB.Exec(query,
		o.Name, o.Type, o.Value, o.ValueType, o.Status, o.StartDate, o.EndDate,
		o.MaxUsage, conditions, pq.Array(o.TargetProducts), o.UpdatedBy, o.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFound("offer", o.ID)
	}
	return nil
}

func scanOffer(row interface{ Scan(...interface{}) error }) (*model.Offer, error) {
	var o model.Offer
	var conditions []byte
	err := row.Scan(
		&o.ID, &o.Name, &o.Type, &o.Value, &o.ValueType, &o.Status, &o.StartDate, &o.EndDate,
		&o.MaxUsage, &o.UsageCount, &conditions, pq.Array(&o.TargetProducts),
		&o.UseYn, &o.CreatedBy, &o.UpdatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(conditions) > 0 {
		if err := json.Unmarshal(conditions, &o.Conditions); err != nil {
			return nil, err
		}
	}
	return &o, nil
}

func (r *OfferRepository) GetByID(id int) (*model.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers WHERE id=$1 AND use_yn='Y'`
	o, err := scanOffer(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFound("offer", id)
		}
		return nil, err
	}
	return o, nil
}

func (r *OfferRepository) List(p model.ListParams, status, offerType string) ([]*model.Offer, int, error) {
	where := ` WHERE use_yn='Y'`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		where += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if offerType != "" {
		where += fmt.Sprintf(" AND type=$%d", argPos)
		args = append(args, offerType)
		argPos++
	}
	if p.Search != "" {
		where += fmt.Sprintf(" AND name ILIKE '%%'||$%d||'%%'", argPos)
		args = append(args, p.Search)
		argPos++
	}

	query := `SELECT ` + offerColumns + ` FROM offers` + where +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	offers := []*model.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, err
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM offers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

// Delete soft-deletes the offer. Refused while a non-completed campaign still
// references it; the guard runs under the row lock, same shape as the
// customer-group deactivation guard.
func (r *OfferRepository) Delete(id int, actor string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var useYn string
	err = tx.QueryRow(`SELECT use_yn FROM offers WHERE id=$1 AND use_yn='Y' FOR UPDATE`, id).Scan(&useYn)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.NewNotFound("offer", id)
		}
		return err
	}

	blocking, err := blockingCampaigns(tx, `offer_id`, id)
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		return apperrors.NewConflict(
			"offer is referenced by active campaigns",
			map[string]interface{}{"activeCampaigns": blocking},
		)
	}

	_, err = tx.Exec(`UPDATE offers SET use_yn='N', updated_by=$1, updated_at=NOW() WHERE id=$2`, actor, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *OfferRepository) BlockingCampaigns(offerID int) ([]model.BlockingCampaign, error) {
	return blockingCampaigns(r.DB, `offer_id`, offerID)
}

var _ OfferRepositoryInterface = (*OfferRepository)(nil)
