package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/repository"
)

// TeamHandler manages teams and their rosters. Team names are unique;
// roster membership is a set, adding a player twice is a conflict.
type TeamHandler struct {
	TeamRepo *repository.TeamRepo
	UserRepo *repository.UserRepo
}

// NewTeamHandler constructs a TeamHandler.
func NewTeamHandler(teamRepo *repository.TeamRepo, userRepo *repository.UserRepo) *TeamHandler {
	if teamRepo == nil || userRepo == nil {
		panic("nil repository passed to NewTeamHandler")
	}
	return &TeamHandler{TeamRepo: teamRepo, UserRepo: userRepo}
}

// Create handles POST /v1/teams. Admins and coaches only.
func (h *TeamHandler) Create(c echo.Context) error {
	if !authz.CanManageTeams(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var body struct {
		Name    string  `json:"name"`
		CoachID *uint64 `json:"coach_id"`
	}
	if err := c.Bind(&body); err != nil || body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	if body.CoachID != nil {
		u, err := h.UserRepo.GetByID(c.Request().Context(), *body.CoachID)
		if err != nil || authz.Role(u.Role) != authz.RoleCoach {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "coach_id must reference a coach account"})
		}
	}
	t := &model.Team{Name: body.Name, CoachID: body.CoachID}
	if err := h.TeamRepo.Create(c.Request().Context(), t); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusCreated, t)
}

// List handles GET /v1/teams. Any authenticated user.
func (h *TeamHandler) List(c echo.Context) error {
	teams, err := h.TeamRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load teams"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"teams_count": len(teams),
		"teams":       teams,
	})
}

// Get handles GET /v1/teams/:id, returning the team with its roster.
func (h *TeamHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}
	ctx := c.Request().Context()
	t, err := h.TeamRepo.GetByID(ctx, id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	roster, err := h.TeamRepo.Roster(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load roster"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"team":         t,
		"roster_count": len(roster),
		"roster":       roster,
	})
}

// AddPlayer handles POST /v1/teams/:id/players. Admins and coaches
// only; the player must hold a bookable role.
func (h *TeamHandler) AddPlayer(c echo.Context) error {
	if !authz.CanManageTeams(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	teamID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}
	var body struct {
		PlayerID uint64 `json:"player_id"`
	}
	if err := c.Bind(&body); err != nil || body.PlayerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "player_id is required"})
	}
	u, err := h.UserRepo.GetByID(c.Request().Context(), body.PlayerID)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "player not found"})
	}
	if !authz.CanBook(authz.Role(u.Role)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "player_id must reference a player account"})
	}
	if err := h.TeamRepo.AddPlayer(c.Request().Context(), teamID, body.PlayerID); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "player added to team"})
}

// RemovePlayer handles DELETE /v1/teams/:id/players/:player_id.
func (h *TeamHandler) RemovePlayer(c echo.Context) error {
	if !authz.CanManageTeams(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	teamID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}
	playerID, err := parseUintParam(c, "player_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid player id"})
	}
	if err := h.TeamRepo.RemovePlayer(c.Request().Context(), teamID, playerID); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "player removed from team"})
}

// Delete handles DELETE /v1/teams/:id. Admins and coaches only; roster
// rows cascade.
func (h *TeamHandler) Delete(c echo.Context) error {
	if !authz.CanManageTeams(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}
	if err := h.TeamRepo.Delete(c.Request().Context(), id); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "team deleted"})
}
