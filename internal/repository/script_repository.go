package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/taeyeong15/marketing-backend/internal/apperrors"
	"github.com/taeyeong15/marketing-backend/internal/model"
)

type ScriptRepositoryInterface interface {
	Create(s *model.Script) error
	Update(s *model.Script) error
	GetByID(id int) (*model.Script, error)
	List(p model.ListParams, scriptType, status string) ([]*model.Script, int, error)
	Delete(id int, actor string) error
}

type ScriptRepository struct {
	DB *sql.DB
}

const scriptColumns = `id, name, type, status, subject, content, variables, created_by, updated_by, created_at, updated_at`

func (r *ScriptRepository) Create(s *model.Script) error {
	if s.Status == "" {
		s.Status = "ACTIVE"
	}
	query := `
        INSERT INTO scripts (name, type, status, subject, content, variables, created_by, updated_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $7, NOW())
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query,
		s.Name, s.Type, s.Status, s.Subject, s.Content, pq.Array(s.Variables), s.CreatedBy,
	).Scan(&s.ID, &s.CreatedAt)
}

// Update rewrites the template. Variables must already be recomputed from the
// new content by the service; the stored list is fully replaced, never merged.
func (r *ScriptRepository) Update(s *model.Script) error {
	query := `
        UPDATE scripts
        SET name=$1, type=$2, status=$3, subject=$4, content=$5, variables=$6, updated_by=$7, updated_at=NOW()
        WHERE id=$8 AND use_yn='Y'
    `
	res, err := r.DB.Exec(query,
		s.Name, s.Type, s.Status, s.Subject, s.Content, pq.Array(s.Variables), s.UpdatedBy, s.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.NewNotFound("script", s.ID)
	}
	return nil
}

func scanScript(row interface{ Scan(...interface{}) error }) (*model.Script, error) {
	var s model.Script
	err := row.Scan(
		&s.ID, &s.Name, &s.Type, &s.Status, &s.Subject, &s.Content, pq.Array(&s.Variables),
		&s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScriptRepository) GetByID(id int) (*model.Script, error) {
	query := `SELECT ` + scriptColumns + ` FROM scripts WHERE id=$1 AND use_yn='Y'`
	s, err := scanScript(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFound("script", id)
		}
		return nil, err
	}
	return s, nil
}

func (r *ScriptRepository) List(p model.ListParams, scriptType, status string) ([]*model.Script, int, error) {
	where := ` WHERE use_yn='Y'`
	args := []interface{}{}
	argPos := 1

	if scriptType != "" {
		where += fmt.Sprintf(" AND type=$%d", argPos)
		args = append(args, scriptType)
		argPos++
	}
	if status != "" {
		where += fmt.Sprintf(" AND status=$%d", argPos)
		args = append(args, status)
		argPos++
	}
	if p.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE '%%'||$%d||'%%' OR content ILIKE '%%'||$%d||'%%')", argPos, argPos)
		args = append(args, p.Search)
		argPos++
	}

	query := `SELECT ` + scriptColumns + ` FROM scripts` + where +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.Query(query, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	scripts := []*model.Script{}
	for rows.Next() {
		s, err := scanScript(rows)
		if err != nil {
			return nil, 0, err
		}
		scripts = append(scripts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM scripts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return scripts, total, nil
}

// Delete soft-deletes the script unless a non-completed campaign references it.
func (r *ScriptRepository) Delete(id int, actor string) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var useYn string
	err = tx.QueryRow(`SELECT use_yn FROM scripts WHERE id=$1 AND use_yn='Y' FOR UPDATE`, id).Scan(&useYn)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.NewNotFound("script", id)
		}
		return err
	}

	blocking, err := blockingCampaigns(tx, `script_id`, id)
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		return apperrors.NewConflict(
			"script is referenced by active campaigns",
			map[string]interface{}{"activeCampaigns": blocking},
		)
	}

	_, err = tx.Exec(`UPDATE scripts SET use_yn='N', updated_by=$1, updated_at=NOW() WHERE id=$2`, actor, id)
	if err != nil {
		return err
	}
	return tx.Commit()
}

var _ ScriptRepositoryInterface = (*ScriptRepository)(nil)
