package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartfc/football-center/internal/model"
)

// SessionRepo provides persistence for training sessions. The
// spots_left column is only ever written through the booking
// lifecycle: the book path locks the row with GetForUpdateTx and
// writes the new counter with UpdateSpotsTx, the cancel path uses the
// clamped ReleaseSpotTx. All timestamps are stored in UTC.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// DB exposes the underlying sql.DB. It allows callers to begin
// transactions spanning multiple repositories.
func (r *SessionRepo) DB() *sql.DB { return r.db }

const sessionCols = `id, name, session_type, coach_id, date, duration_minutes, price, capacity, spots_left, created_at, updated_at`

// scanSession reads one sessions row. The price column is DECIMAL(8,2)
// and is scanned through a string to keep fixed-point precision.
func scanSession(row interface{ Scan(...interface{}) error }) (*model.Session, error) {
	var (
		s        model.Session
		coachID  sql.NullInt64
		priceStr string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.SessionType, &coachID, &s.Date,
		&s.DurationMinutes, &priceStr, &s.Capacity, &s.SpotsLeft,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if coachID.Valid {
		id := uint64(coachID.Int64)
		s.CoachID = &id
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, err
	}
	s.Price = price
	return &s, nil
}

// Create inserts a new session. spots_left is initialized to capacity;
// callers never supply it. The generated ID and DB-default timestamps
// are populated on the given struct.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (name, session_type, coach_id, date, duration_minutes, price, capacity, spots_left)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	var coachID interface{}
	if s.CoachID != nil {
		coachID = *s.CoachID
	}
	res, err := r.db.ExecContext(ctx, q, s.Name, s.SessionType, coachID,
		s.Date.UTC(), s.DurationMinutes, s.Price.StringFixed(2), s.Capacity, s.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	sel := `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	got, err := scanSession(r.db.QueryRowContext(ctx, sel, s.ID))
	if err != nil {
		return err
	}
	*s = *got
	return nil
}

// GetByID retrieves a session by its ID. It returns ErrNotFound when
// no matching row exists.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	q := `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	s, err := scanSession(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetForUpdateTx loads a session row under an exclusive row lock
// inside the provided transaction. Concurrent bookers serialize here:
// no caller can observe a stale spots_left between its check and its
// write. Returns ErrNotFound when the session does not exist.
func (r *SessionRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Session, error) {
	q := `SELECT ` + sessionCols + ` FROM sessions WHERE id = ? FOR UPDATE`
	s, err := scanSession(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// UpdateSpotsTx writes a new spots_left value for a session the caller
// has locked with GetForUpdateTx in the same transaction.
func (r *SessionRepo) UpdateSpotsTx(ctx context.Context, tx *sql.Tx, id uint64, spotsLeft uint32) error {
	_, err := tx.ExecContext(ctx, `UPDATE sessions SET spots_left = ? WHERE id = ?`, spotsLeft, id)
	return err
}

// ReleaseSpotTx returns one spot to a session. The increment is
// clamped at capacity in SQL so an unmatched release can never push
// spots_left past the fixed maximum.
func (r *SessionRepo) ReleaseSpotTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE sessions SET spots_left = LEAST(spots_left + 1, capacity) WHERE id = ?`, id)
	return err
}

// SessionFilter narrows List results. Zero values mean "no filter".
type SessionFilter struct {
	SessionType string     // exact session_type match
	CoachID     uint64     // sessions assigned to this coach
	DateFrom    *time.Time // date >= DateFrom
	DateTo      *time.Time // date <= DateTo
	Upcoming    *time.Time // date >= now, i.e. not yet started
	Available   bool       // spots_left > 0 only
}

// List returns sessions matching the filter, ordered by date
// ascending. When nothing matches it returns an empty slice.
func (r *SessionRepo) List(ctx context.Context, f SessionFilter) ([]model.Session, error) {
	var (
		conds []string
		args  []interface{}
	)
	if f.SessionType != "" {
		conds = append(conds, "session_type = ?")
		args = append(args, f.SessionType)
	}
	if f.CoachID != 0 {
		conds = append(conds, "coach_id = ?")
		args = append(args, f.CoachID)
	}
	if f.DateFrom != nil {
		conds = append(conds, "date >= ?")
		args = append(args, f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		conds = append(conds, "date <= ?")
		args = append(args, f.DateTo.UTC())
	}
	if f.Upcoming != nil {
		conds = append(conds, "date >= ?")
		args = append(args, f.Upcoming.UTC())
	}
	if f.Available {
		conds = append(conds, "spots_left > 0")
	}
	q := `SELECT ` + sessionCols + ` FROM sessions`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY date ASC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Upcoming returns up to limit sessions scheduled at or after now,
// soonest first.
func (r *SessionRepo) Upcoming(ctx context.Context, now time.Time, limit int) ([]model.Session, error) {
	q := `SELECT ` + sessionCols + ` FROM sessions WHERE date >= ? ORDER BY date ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Session, 0, limit)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update modifies the mutable fields of a session. Capacity and
// spots_left are deliberately excluded: capacity is fixed at creation
// and spots_left belongs to the booking lifecycle. Returns ErrNotFound
// when the session does not exist.
func (r *SessionRepo) Update(ctx context.Context, s *model.Session) error {
	const q = `UPDATE sessions SET name = ?, session_type = ?, coach_id = ?, date = ?, duration_minutes = ?, price = ? WHERE id = ?`
	var coachID interface{}
	if s.CoachID != nil {
		coachID = *s.CoachID
	}
	res, err := r.db.ExecContext(ctx, q, s.Name, s.SessionType, coachID,
		s.Date.UTC(), s.DurationMinutes, s.Price.StringFixed(2), s.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the row is missing or nothing changed; distinguish.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)`, s.ID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}
	return nil
}

// Delete removes a session. Bookings cascade via the foreign key.
// Returns ErrNotFound when no row was deleted.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
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

// SessionStats aggregates counters for the stats endpoint.
type SessionStats struct {
	TotalSessions    uint64          `json:"total_sessions"`
	UpcomingSessions uint64          `json:"upcoming_sessions"`
	PastSessions     uint64          `json:"past_sessions"`
	FullSessions     uint64          `json:"full_sessions"`
	TotalBookings    uint64          `json:"total_bookings"`
	Revenue          decimal.Decimal `json:"revenue"`
}

// Stats computes session and booking counters in a single round trip
// per aggregate. Revenue is the price sum over all sessions.
func (r *SessionRepo) Stats(ctx context.Context, now time.Time) (SessionStats, error) {
	var st SessionStats
	const q = `SELECT COUNT(*),
                      COALESCE(SUM(date >= ?), 0),
                      COALESCE(SUM(spots_left = 0), 0),
                      COALESCE(SUM(price), 0)
               FROM sessions`
	var revenueStr string
	if err := r.db.QueryRowContext(ctx, q, now.UTC()).Scan(
		&st.TotalSessions, &st.UpcomingSessions, &st.FullSessions, &revenueStr); err != nil {
		return SessionStats{}, err
	}
	revenue, err := decimal.NewFromString(revenueStr)
	if err != nil {
		return SessionStats{}, err
	}
	st.Revenue = revenue
	st.PastSessions = st.TotalSessions - st.UpcomingSessions
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&st.TotalBookings); err != nil {
		return SessionStats{}, err
	}
	return st, nil
}
