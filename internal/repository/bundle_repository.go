package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartfc/football-center/internal/model"
)

// BundleRepo provides persistence for prepaid session bundles. Credit
// consumption locks the row so two concurrent consumers of the last
// credit cannot both succeed.
type BundleRepo struct {
	db *sql.DB
}

// NewBundleRepo returns a BundleRepo bound to the given database.
func NewBundleRepo(db *sql.DB) *BundleRepo { return &BundleRepo{db: db} }

// DB exposes the underlying sql.DB for handler-owned transactions.
func (r *BundleRepo) DB() *sql.DB { return r.db }

const bundleCols = `id, owner_id, sessions_included, sessions_used, expiry_date`

func scanBundle(row interface{ Scan(...interface{}) error }) (*model.Bundle, error) {
	var b model.Bundle
	if err := row.Scan(&b.ID, &b.OwnerID, &b.SessionsIncluded, &b.SessionsUsed, &b.ExpiryDate); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new bundle with sessions_used starting at zero.
func (r *BundleRepo) Create(ctx context.Context, b *model.Bundle) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bundles (owner_id, sessions_included, expiry_date) VALUES (?, ?, ?)`,
		b.OwnerID, b.SessionsIncluded, b.ExpiryDate.UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	got, err := scanBundle(r.db.QueryRowContext(ctx,
		`SELECT `+bundleCols+` FROM bundles WHERE id = ?`, b.ID))
	if err != nil {
		return err
	}
	*b = *got
	return nil
}

// GetByID retrieves a bundle. Returns ErrNotFound when missing.
func (r *BundleRepo) GetByID(ctx context.Context, id uint64) (*model.Bundle, error) {
	b, err := scanBundle(r.db.QueryRowContext(ctx,
		`SELECT `+bundleCols+` FROM bundles WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// GetForUpdateTx loads a bundle under an exclusive row lock inside the
// provided transaction. Credit consumers serialize here.
func (r *BundleRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Bundle, error) {
	b, err := scanBundle(tx.QueryRowContext(ctx,
		`SELECT `+bundleCols+` FROM bundles WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// UpdateUsageTx writes a new sessions_used value for a bundle the
// caller holds locked in the same transaction.
func (r *BundleRepo) UpdateUsageTx(ctx context.Context, tx *sql.Tx, id uint64, sessionsUsed uint32) error {
	_, err := tx.ExecContext(ctx, `UPDATE bundles SET sessions_used = ? WHERE id = ?`, sessionsUsed, id)
	return err
}

// ListByOwner returns the owner's bundles, newest first.
func (r *BundleRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Bundle, error) {
	return r.list(ctx, `SELECT `+bundleCols+` FROM bundles WHERE owner_id = ? ORDER BY id DESC`, ownerID)
}

// ListAll returns every bundle, newest first. Admin only.
func (r *BundleRepo) ListAll(ctx context.Context) ([]model.Bundle, error) {
	return r.list(ctx, `SELECT `+bundleCols+` FROM bundles ORDER BY id DESC`)
}

func (r *BundleRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Bundle, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Bundle, 0)
	for rows.Next() {
		b, err := scanBundle(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a bundle. Returns ErrNotFound when no row was
// deleted.
func (r *BundleRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bundles WHERE id = ?`, id)
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
