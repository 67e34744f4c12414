package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/smartfc/football-center/internal/model"
)

// TeamRepo provides persistence for teams and their rosters. Roster
// entries live in the team_players join table with a composite primary
// key, so adding the same player twice is a conflict, not a duplicate
// row.
type TeamRepo struct {
	db *sql.DB
}

// NewTeamRepo returns a TeamRepo bound to the given database.
func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{db: db} }

func scanTeam(row interface{ Scan(...interface{}) error }) (*model.Team, error) {
	var (
		t       model.Team
		coachID sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.Name, &coachID, &t.CreatedAt); err != nil {
		return nil, err
	}
	if coachID.Valid {
		id := uint64(coachID.Int64)
		t.CoachID = &id
	}
	return &t, nil
}

// Create inserts a new team. Team names are unique; a duplicate
// returns ErrConflict.
func (r *TeamRepo) Create(ctx context.Context, t *model.Team) error {
	var coachID interface{}
	if t.CoachID != nil {
		coachID = *t.CoachID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO teams (name, coach_id) VALUES (?, ?)`, t.Name, coachID)
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
	t.ID = uint64(id)
	got, err := scanTeam(r.db.QueryRowContext(ctx,
		`SELECT id, name, coach_id, created_at FROM teams WHERE id = ?`, t.ID))
	if err != nil {
		return err
	}
	*t = *got
	return nil
}

// GetByID retrieves a team. Returns ErrNotFound when missing.
func (r *TeamRepo) GetByID(ctx context.Context, id uint64) (*model.Team, error) {
	t, err := scanTeam(r.db.QueryRowContext(ctx,
		`SELECT id, name, coach_id, created_at FROM teams WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// List returns all teams ordered by name.
func (r *TeamRepo) List(ctx context.Context) ([]model.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, coach_id, created_at FROM teams ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AddPlayer adds a player to the roster. Adding an existing member
// returns ErrConflict; a missing team or player surfaces the foreign
// key failure as ErrNotFound.
func (r *TeamRepo) AddPlayer(ctx context.Context, teamID, playerID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_players (team_id, player_id) VALUES (?, ?)`, teamID, playerID)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "1062") {
			return ErrConflict
		}
		// 1452: FK constraint fails (unknown team or player)
		if strings.Contains(msg, "1452") {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// RemovePlayer removes a player from the roster. Returns ErrNotFound
// when the player was not on the team.
func (r *TeamRepo) RemovePlayer(ctx context.Context, teamID, playerID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM team_players WHERE team_id = ? AND player_id = ?`, teamID, playerID)
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

// RosterEntry carries one roster row with the player's display name.
type RosterEntry struct {
	PlayerID   uint64 `json:"player_id"`
	PlayerName string `json:"player_name"`
	Role       string `json:"role"`
}

// Roster lists the players on a team ordered by name.
func (r *TeamRepo) Roster(ctx context.Context, teamID uint64) ([]RosterEntry, error) {
	const q = `SELECT u.id, TRIM(CONCAT(u.first_name, ' ', u.last_name)), u.role
               FROM team_players tp
               JOIN users u ON u.id = tp.player_id
               WHERE tp.team_id = ?
               ORDER BY u.first_name, u.last_name`
	rows, err := r.db.QueryContext(ctx, q, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	roster := make([]RosterEntry, 0)
	for rows.Next() {
		var e RosterEntry
		if err := rows.Scan(&e.PlayerID, &e.PlayerName, &e.Role); err != nil {
			return nil, err
		}
		roster = append(roster, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roster, nil
}

// Delete removes a team; roster rows cascade. Returns ErrNotFound when
// no row was deleted.
func (r *TeamRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
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
