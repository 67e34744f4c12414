package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/repository"
)

// BundleHandler exposes prepaid session bundles. UseCredit is the only
// path that mutates sessions_used, and it runs under a row lock so two
// concurrent spenders of the last credit cannot both succeed.
type BundleHandler struct {
	BundleRepo *repository.BundleRepo
}

// NewBundleHandler constructs a BundleHandler.
func NewBundleHandler(bundleRepo *repository.BundleRepo) *BundleHandler {
	if bundleRepo == nil {
		panic("nil repository passed to NewBundleHandler")
	}
	return &BundleHandler{BundleRepo: bundleRepo}
}

// bundleJSON decorates a bundle with its derived credit counter.
func bundleJSON(b *model.Bundle) echo.Map {
	return echo.Map{
		"id":                b.ID,
		"owner_id":          b.OwnerID,
		"sessions_included": b.SessionsIncluded,
		"sessions_used":     b.SessionsUsed,
		"credits_remaining": b.CreditsLeft(),
		"expiry_date":       b.ExpiryDate.UTC().Format("2006-01-02"),
	}
}

// Create handles POST /v1/bundles. Admins only; bundles are sold at
// the front desk, not self-served.
func (h *BundleHandler) Create(c echo.Context) error {
	if getRole(c) != authz.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var body struct {
		OwnerID          uint64 `json:"owner_id"`
		SessionsIncluded uint32 `json:"sessions_included"`
		ExpiryDate       string `json:"expiry_date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.OwnerID == 0 || body.SessionsIncluded == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "owner_id and sessions_included are required"})
	}
	expiry, err := time.Parse("2006-01-02", body.ExpiryDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "expiry_date must be YYYY-MM-DD"})
	}
	b := &model.Bundle{
		OwnerID:          body.OwnerID,
		SessionsIncluded: body.SessionsIncluded,
		ExpiryDate:       expiry,
	}
	if err := h.BundleRepo.Create(c.Request().Context(), b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create bundle"})
	}
	return c.JSON(http.StatusCreated, bundleJSON(b))
}

// Get handles GET /v1/bundles/:id. Owners see their own bundles,
// admins any.
func (h *BundleHandler) Get(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bundle id"})
	}
	b, err := h.BundleRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	if !authz.CanViewOwned(getRole(c), callerID, b.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, bundleJSON(b))
}

// List handles GET /v1/bundles. Admins see every bundle, everyone else
// their own.
func (h *BundleHandler) List(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	var bundles []model.Bundle
	if getRole(c) == authz.RoleAdmin {
		bundles, err = h.BundleRepo.ListAll(ctx)
	} else {
		bundles, err = h.BundleRepo.ListByOwner(ctx, callerID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bundles"})
	}
	out := make([]echo.Map, 0, len(bundles))
	for i := range bundles {
		out = append(out, bundleJSON(&bundles[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bundles_count": len(out),
		"bundles":       out,
	})
}

// UseCredit handles POST /v1/bundles/:id/use. It locks the bundle row,
// checks credits before expiry, and persists the new usage counter in
// the same transaction. The response carries the credits left after
// the deduction.
func (h *BundleHandler) UseCredit(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bundle id"})
	}
	ctx := c.Request().Context()
	tx, err := h.BundleRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	b, err := h.BundleRepo.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return domainErrJSON(c, err)
	}
	if !authz.CanViewOwned(getRole(c), callerID, b.OwnerID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := b.UseCredit(time.Now().UTC()); err != nil {
		return domainErrJSON(c, err)
	}
	if err := h.BundleRepo.UpdateUsageTx(ctx, tx, b.ID, b.SessionsUsed); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update bundle"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.JSON(http.StatusOK, echo.Map{
		"bundle_id":         b.ID,
		"sessions_used":     b.SessionsUsed,
		"credits_remaining": b.CreditsLeft(),
	})
}

// MyBundles handles GET /v1/my-bundles: the caller's bundles.
func (h *BundleHandler) MyBundles(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bundles, err := h.BundleRepo.ListByOwner(c.Request().Context(), callerID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bundles"})
	}
	out := make([]echo.Map, 0, len(bundles))
	for i := range bundles {
		out = append(out, bundleJSON(&bundles[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"bundles_count": len(out),
		"bundles":       out,
	})
}

// Delete handles DELETE /v1/bundles/:id. Admins only.
func (h *BundleHandler) Delete(c echo.Context) error {
	if getRole(c) != authz.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bundle id"})
	}
	if err := h.BundleRepo.Delete(c.Request().Context(), id); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "bundle deleted"})
}
