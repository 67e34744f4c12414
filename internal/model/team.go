package model

import "time"

// Team groups players under an optional coach. Roster membership lives
// in the team_players join table.
type Team struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CoachID   *uint64   `json:"coach_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamPlayer is one roster entry in the team_players join table.
type TeamPlayer struct {
	TeamID   uint64    `json:"team_id"`
	PlayerID uint64    `json:"player_id"`
	JoinedAt time.Time `json:"joined_at"`
}
