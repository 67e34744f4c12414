package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/smartfc/football-center/internal/model"
)

// DiscountRepo provides persistence for discount codes. Codes are
// stored uppercased and matched case-insensitively; the unique key on
// the code column backs the conflict check.
type DiscountRepo struct {
	db *sql.DB
}

// NewDiscountRepo returns a DiscountRepo bound to the given database.
func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{db: db} }

const discountCols = `id, code, description, percentage, active`

func scanDiscount(row interface{ Scan(...interface{}) error }) (*model.Discount, error) {
	var d model.Discount
	if err := row.Scan(&d.ID, &d.Code, &d.Description, &d.Percentage, &d.Active); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new discount. The code is uppercased before
// storage. A duplicate code returns ErrConflict (MySQL error 1062).
func (r *DiscountRepo) Create(ctx context.Context, d *model.Discount) error {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO discounts (code, description, percentage, active) VALUES (?, ?, ?, ?)`,
		d.Code, d.Description, d.Percentage, d.Active)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID retrieves a discount. Returns ErrNotFound when missing.
func (r *DiscountRepo) GetByID(ctx context.Context, id uint64) (*model.Discount, error) {
	d, err := scanDiscount(r.db.QueryRowContext(ctx,
		`SELECT `+discountCols+` FROM discounts WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// GetActiveByCode resolves a code case-insensitively to its active
// discount. Missing and inactive codes both return ErrNotFound so the
// caller cannot probe which codes exist.
func (r *DiscountRepo) GetActiveByCode(ctx context.Context, code string) (*model.Discount, error) {
	d, err := scanDiscount(r.db.QueryRowContext(ctx,
		`SELECT `+discountCols+` FROM discounts WHERE code = UPPER(?) AND active = TRUE LIMIT 1`,
		strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListActive returns all active discounts, newest first.
func (r *DiscountRepo) ListActive(ctx context.Context) ([]model.Discount, error) {
	return r.list(ctx, `SELECT `+discountCols+` FROM discounts WHERE active = TRUE ORDER BY id DESC`)
}

// ListAll returns every discount, newest first.
func (r *DiscountRepo) ListAll(ctx context.Context) ([]model.Discount, error) {
	return r.list(ctx, `SELECT `+discountCols+` FROM discounts ORDER BY id DESC`)
}

func (r *DiscountRepo) list(ctx context.Context, q string) ([]model.Discount, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Discount, 0)
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update modifies a discount. The code is uppercased; a collision with
// another row's code returns ErrConflict, a missing row ErrNotFound.
func (r *DiscountRepo) Update(ctx context.Context, d *model.Discount) error {
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	res, err := r.db.ExecContext(ctx,
		`UPDATE discounts SET code = ?, description = ?, percentage = ?, active = ? WHERE id = ?`,
		d.Code, d.Description, d.Percentage, d.Active, d.ID)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrConflict
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM discounts WHERE id = ?)`, d.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a discount. Returns ErrNotFound when no row was
// deleted.
func (r *DiscountRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
