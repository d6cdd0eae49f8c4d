package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
)

type CustomerGroupRepositoryInterface interface {
	Create(g *model.CustomerGroup) error
	Update(g *model.CustomerGroup) error
	GetByID(id int) (*model.CustomerGroup, error)
	List(p model.ListParams, status string) ([]*model.CustomerGroup, int, error)
	SetStatus(id int, status, actor string) (bool, error)
	BlockingCampaigns(groupID int) ([]model.BlockingCampaign, error)
}

type CustomerGroupRepository struct {
	DB *sql.DB
}

func (r *CustomerGroupRepository) Create(g *model.CustomerGroup) error {
	criteria, err := json.Marshal(g.Criteria)
	if err != nil {
		return err
	}
	if g.Status == "" {
		g.Status = model.GroupStatusActive
	}
	g.UseYn = "Y"
	query := `
        INSERT INTO customer_groups (name, description, criteria, status, estimated_count, actual_count, use_yn, created_by, created_dept, updated_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 'Y', $7, $8, $7, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query,
		g.Name, g.Description, criteria, g.Status, g.EstimatedCount, g.ActualCount, g.CreatedBy, g.CreatedDept,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *CustomerGroupRepository) Update(g *model.CustomerGroup) error {
	criteria, err := json.Marshal(g.Criteria)
	if err != nil {
		return err
	}
	query := `
        UPDATE customer_groups
        SET name=$1, description=$2, criteria=$3, estimated_count=$4, updated_by=$5, updated_at=NOW()
        WHERE id=$6 AND use_yn='Y'
    `
	res, err := r.DB.Exec(query, g.Name, g.Description, criteria, g.EstimatedCount, g.UpdatedBy, g.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFound("customer group", g.ID)
	}
	return nil
}

func scanGroup(row interface{ Scan(...interface{}) error }) (*model.CustomerGroup, error) {
	var g model.CustomerGroup
	var criteria []byte
	err := row.Scan(
		&g.ID, &g.Name, &g.Description, &criteria, &g.Status, &g.EstimatedCount, &g.ActualCount,
		&g.UseYn, &g.CreatedBy, &g.CreatedDept, &g.UpdatedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(criteria) > 0 {
		if err := json.Unmarshal(criteria, &g.Criteria); err != nil {
			return nil, err
		}
	}
	return &g, nil
}

const groupColumns = `id, name, description, criteria, status, estimated_count, actual_count, use_yn,
        created_by, created_dept, updated_by, created_at, updated_at`

func (r *CustomerGroupRepository) GetByID(id int) (*model.CustomerGroup, error) {
	query := `SELECT ` + groupColumns + ` FROM customer_groups WHERE id=$1 AND use_yn='Y'`
	g, err := scanGroup(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFound("customer group", id)
		}
		return nil, err
	}
	return g, nil
}

func (r *CustomerGroupRepository) List(p model.ListParams, status string) ([]*model.CustomerGroup, int, error) {
	where := ` WHERE use_yn='Y'`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		where += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if p.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE '%%'||$%d||'%%' OR description ILIKE '%%'||$%d||'%%')", argPos, argPos)
		args = append(args, p.Search)
		argPos++
	}

	query := `SELECT ` + groupColumns + ` FROM customer_groups` + where +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	groups := []*model.CustomerGroup{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, 0, err
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM customer_groups`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

// SetStatus flips the group's activation state. Deactivation is refused while
// any non-completed campaign still targets the group; the blocking set is
// gathered under the same lock so the guard and the flip cannot race. Setting
// the current status again is a no-op, not an error. The bool reports whether
// anything changed.
func (r *CustomerGroupRepository) SetStatus(id int, status, actor string) (bool, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var current string
	err = tx.QueryRow(`SELECT status FROM customer_groups WHERE id=$1 AND use_yn='Y' FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, apperrors.NewNotFound("customer group", id)
		}
		return false, err
	}
	if current == status {
		return false, tx.Commit()
	}

	if status == model.GroupStatusInactive {
		blocking, err := blockingCampaigns(tx, `customer_group_id`, id)
		if err != nil {
			return false, err
		}
		if len(blocking) > 0 {
			return false, apperrors.NewConflict(
				"customer group is referenced by active campaigns",
				map[string]interface{}{"activeCampaigns": blocking},
			)
		}
	}

	_, err = tx.Exec(`UPDATE customer_groups SET status=$1, updated_by=$2, updated_at=NOW() WHERE id=$3`, status, actor, id)
	if err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *CustomerGroupRepository) BlockingCampaigns(groupID int) ([]model.BlockingCampaign, error) {
	return blockingCampaigns(r.DB, `customer_group_id`, groupID)
}

type querier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// blockingCampaigns lists the non-completed campaigns referencing the given
// entity column. Shared by the customer-group and offer guards.
func blockingCampaigns(q querier, column string, id int) ([]model.BlockingCampaign, error) {
	query := fmt.Sprintf(`
        SELECT id, name, status FROM campaigns
        WHERE %s=$1 AND status <> 'COMPLETED' AND deleted_at IS NULL
        ORDER BY id
    `, column)
	rows, err := q.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocking := []model.BlockingCampaign{}
	for rows.Next() {
		var b model.BlockingCampaign
		if err := rows.Scan(&b.ID, &b.Name, &b.Status); err != nil {
			return nil, err
		}
		blocking = append(blocking, b)
	}
	return blocking, rows.Err()
}

var _ CustomerGroupRepositoryInterface = (*CustomerGroupRepository)(nil)
