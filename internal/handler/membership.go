package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/repository"
)

// MembershipHandler exposes memberships and their freeze lifecycle.
// Freeze and unfreeze run under a row lock so concurrent freezes
// cannot push the counter past its ceiling.
type MembershipHandler struct {
	MembershipRepo *repository.MembershipRepo
}

// NewMembershipHandler constructs a MembershipHandler.
func NewMembershipHandler(membershipRepo *repository.MembershipRepo) *MembershipHandler {
	if membershipRepo == nil {
		panic("nil repository passed to NewMembershipHandler")
	}
	return &MembershipHandler{MembershipRepo: membershipRepo}
}

// Create handles POST /v1/memberships. Admins only. New memberships
// start Active with a zero freeze counter.
func (h *MembershipHandler) Create(c echo.Context) error {
	if getRole(c) != authz.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var body struct {
		OwnerID     uint64 `json:"owner_id"`
		PlanName    string `json:"plan_name"`
		RenewalDate string `json:"renewal_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.OwnerID == 0 || body.PlanName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner_id and plan_name are required"})
	}
	renewal, err := time.Parse("2006-01-02", body.RenewalDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "renewal_date must be YYYY-MM-DD"})
	}
	m := &model.Membership{
		OwnerID:     body.OwnerID,
		PlanName:    body.PlanName,
		RenewalDate: renewal,
	}
	if err := h.MembershipRepo.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create membership"})
	}
	return c.JSON(http.StatusCreated, m)
}

// Get handles GET /v1/memberships/:id. Owners and admins only.
func (h *MembershipHandler) Get(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid membership id"})
	}
	m, err := h.MembershipRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	if !authz.CanViewOwned(getRole(c), callerID, m.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, m)
}

// List handles GET /v1/memberships. Admins see everything, others
// their own.
func (h *MembershipHandler) List(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var memberships []model.Membership
	if getRole(c) == authz.RoleAdmin {
		memberships, err = h.MembershipRepo.ListAll(ctx)
	} else {
		memberships, err = h.MembershipRepo.ListByOwner(ctx, callerID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load memberships"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"memberships_count": len(memberships),
		"memberships":       memberships,
	})
}

// MyMembership handles GET /v1/my-membership: the caller's active
// membership, 404 when they have none.
func (h *MembershipHandler) MyMembership(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	m, err := h.MembershipRepo.ActiveByOwner(c.Request().Context(), callerID)
	if err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// Freeze handles POST /v1/memberships/:id/freeze. The row is locked,
// the counter checked against its lifetime ceiling, and the new state
// persisted in one transaction. Freezing an already frozen membership
// still consumes a freeze.
func (h *MembershipHandler) Freeze(c echo.Context) error {
	return h.transition(c, func(m *model.Membership) error { return m.Freeze() }, "membership frozen")
}

// Unfreeze handles POST /v1/memberships/:id/unfreeze. Unconditional;
// the freeze counter is not reset.
func (h *MembershipHandler) Unfreeze(c echo.Context) error {
	return h.transition(c, func(m *model.Membership) error { m.Unfreeze(); return nil }, "membership active")
}

// transition locks the membership row, applies the state change, and
// writes the result back inside one transaction.
func (h *MembershipHandler) transition(c echo.Context, apply func(*model.Membership) error, message string) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid membership id"})
	}
	ctx := c.Request().Context()
	tx, err := h.MembershipRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	m, err := h.MembershipRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	if !authz.CanViewOwned(getRole(c), callerID, m.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := apply(m); err != nil {
		return domainErrJSON(c, err)
	}
	if err := h.MembershipRepo.UpdateStateTx(ctx, tx, m.ID, m.Active, m.FreezeCount); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update membership"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"message":      message,
		"active":       m.Active,
		"freeze_count": m.FreezeCount,
	})
}

// Delete handles DELETE /v1/memberships/:id. Admins only.
func (h *MembershipHandler) Delete(c echo.Context) error {
	if getRole(c) != authz.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid membership id"})
	}
	if err := h.MembershipRepo.Delete(c.Request().Context(), id); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "membership deleted"})
}
