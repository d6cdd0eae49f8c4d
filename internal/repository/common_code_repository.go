package repository

import (
	"database/sql"
	"fmt"

	"github.com/taeyeong15/marketing-backend/internal/model"
)

type CommonCodeRepositoryInterface interface {
	Lookup(category, subCategory string) ([]model.CommonCode, error)
}

// CommonCodeRepository reads the shared enumeration table. The table is
// reference data maintained by operators, never written by this service.
type CommonCodeRepository struct {
	DB *sql.DB
}

func (r *CommonCodeRepository) Lookup(category, subCategory string) ([]model.CommonCode, error) {
	query := `SELECT id, category, sub_category, code, name, sort_order, use_yn FROM common_codes WHERE use_yn='Y'`
	args := []interface{}{}
	argPos := 1

	if category != "" {
		query += fmt.Sprintf(" AND category=$%d", argPos)
		args = append(args, category)
		argPos++
	}
	if subCategory != "" {
		query += fmt.Sprintf(" AND sub_category=$%d", argPos)
		args = append(args, subCategory)
		argPos++
	}
	query += " ORDER BY category, sub_category, sort_order, code"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	codes := []model.CommonCode{}
	for rows.Next() {
		var c model.CommonCode
		if err := rows.Scan(&c.ID, &c.Category, &c.SubCategory, &c.Code, &c.Name, &c.SortOrder, &c.UseYn); err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

var _ CommonCodeRepositoryInterface = (*CommonCodeRepository)(nil)
