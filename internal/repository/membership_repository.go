package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/smartfc/football-center/internal/model"
)

// MembershipRepo provides persistence for memberships. Freeze and
// unfreeze lock the row first so concurrent freezes cannot push
// freeze_count past its ceiling.
type MembershipRepo struct {
	db *sql.DB
}

// NewMembershipRepo returns a MembershipRepo bound to the given database.
func NewMembershipRepo(db *sql.DB) *MembershipRepo { return &MembershipRepo{db: db} }

// DB exposes the underlying sql.DB for handler-owned transactions.
func (r *MembershipRepo) DB() *sql.DB { return r.db }

const membershipCols = `id, owner_id, start_date, active, plan_name, renewal_date, freeze_count`

func scanMembership(row interface{ Scan(...interface{}) error }) (*model.Membership, error) {
	var m model.Membership
	if err := row.Scan(&m.ID, &m.OwnerID, &m.StartDate, &m.Active,
		&m.PlanName, &m.RenewalDate, &m.FreezeCount); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new membership, Active with a zero freeze counter.
func (r *MembershipRepo) Create(ctx context.Context, m *model.Membership) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO memberships (owner_id, plan_name, renewal_date) VALUES (?, ?, ?)`,
		m.OwnerID, m.PlanName, m.RenewalDate.UTC().Format("2006-01-02"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	got, err := scanMembership(r.db.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM memberships WHERE id = ?`, m.ID))
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// GetByID retrieves a membership. Returns ErrNotFound when missing.
func (r *MembershipRepo) GetByID(ctx context.Context, id uint64) (*model.Membership, error) {
	m, err := scanMembership(r.db.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM memberships WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// GetForUpdateTx loads a membership under an exclusive row lock inside
// the provided transaction.
func (r *MembershipRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Membership, error) {
	m, err := scanMembership(tx.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM memberships WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// UpdateStateTx writes the active flag and freeze counter for a
// membership the caller holds locked in the same transaction.
func (r *MembershipRepo) UpdateStateTx(ctx context.Context, tx *sql.Tx, id uint64, active bool, freezeCount uint32) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE memberships SET active = ?, freeze_count = ? WHERE id = ?`,
		active, freezeCount, id)
	return err
}

// ActiveByOwner returns the owner's active membership, or ErrNotFound
// when they have none.
func (r *MembershipRepo) ActiveByOwner(ctx context.Context, ownerID uint64) (*model.Membership, error) {
	m, err := scanMembership(r.db.QueryRowContext(ctx,
		`SELECT `+membershipCols+` FROM memberships WHERE owner_id = ? AND active = TRUE ORDER BY start_date DESC LIMIT 1`,
		ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListByOwner returns the owner's memberships, newest start first.
func (r *MembershipRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Membership, error) {
	return r.list(ctx, `SELECT `+membershipCols+` FROM memberships WHERE owner_id = ? ORDER BY start_date DESC`, ownerID)
}

// ListAll returns every membership, newest start first. Admin only.
func (r *MembershipRepo) ListAll(ctx context.Context) ([]model.Membership, error) {
	return r.list(ctx, `SELECT `+membershipCols+` FROM memberships ORDER BY start_date DESC`)
}

func (r *MembershipRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Membership, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a membership. Returns ErrNotFound when no row was
// deleted.
func (r *MembershipRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memberships WHERE id = ?`, id)
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
