package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/smartfc/football-center/internal/authz"
	"github.com/smartfc/football-center/internal/model"
	"github.com/smartfc/football-center/internal/pricing"
	"github.com/smartfc/football-center/internal/repository"
)

// DiscountHandler manages discount codes and the public apply
// endpoint. Codes are resolved case-insensitively; only admins see or
// touch the full catalogue.
type DiscountHandler struct {
	DiscountRepo *repository.DiscountRepo
}

// NewDiscountHandler constructs a DiscountHandler.
func NewDiscountHandler(discountRepo *repository.DiscountRepo) *DiscountHandler {
	if discountRepo == nil {
		panic("nil repository passed to NewDiscountHandler")
	}
	return &DiscountHandler{DiscountRepo: discountRepo}
}

type discountRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Percentage  uint32 `json:"percentage"`
	Active      *bool  `json:"active"`
}

func (req *discountRequest) validate() string {
	if req.Code == "" {
		return "code is required"
	}
	if req.Percentage > 100 {
		return "percentage must be between 0 and 100"
	}
	return ""
}

// Apply handles POST /v1/discounts/apply. The code is resolved first;
// an unknown or inactive code fails before the amount is even looked
// at. A valid code with a non-positive amount fails on the amount.
func (h *DiscountHandler) Apply(c echo.Context) error {
	var body struct {
		Code   string          `json:"code"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	d, err := h.DiscountRepo.GetActiveByCode(c.Request().Context(), body.Code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domainErrJSON(c, model.ErrInvalidCode)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to resolve discount"})
	}
	quote, err := pricing.Apply(d, body.Amount)
	if err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, quote)
}

// Active handles GET /v1/discounts/active: codes currently applicable,
// visible to any authenticated user.
func (h *DiscountHandler) Active(c echo.Context) error {
	discounts, err := h.DiscountRepo.ListActive(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load discounts"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"discounts_count": len(discounts),
		"discounts":       discounts,
	})
}

// List handles GET /v1/discounts. Admins only; includes inactive
// codes.
func (h *DiscountHandler) List(c echo.Context) error {
	if !authz.CanManageDiscounts(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	discounts, err := h.DiscountRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load discounts"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"discounts_count": len(discounts),
		"discounts":       discounts,
	})
}

// Create handles POST /v1/discounts. Admins only.
func (h *DiscountHandler) Create(c echo.Context) error {
	if !authz.CanManageDiscounts(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var req discountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	d := &model.Discount{
		Code:        req.Code,
		Description: req.Description,
		Percentage:  req.Percentage,
		Active:      active,
	}
	if err := h.DiscountRepo.Create(c.Request().Context(), d); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusCreated, d)
}

// Update handles PUT /v1/discounts/:id. Admins only.
func (h *DiscountHandler) Update(c echo.Context) error {
	if !authz.CanManageDiscounts(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid discount id"})
	}
	var req discountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	d := &model.Discount{
		ID:          id,
		Code:        req.Code,
		Description: req.Description,
		Percentage:  req.Percentage,
		Active:      active,
	}
	if err := h.DiscountRepo.Update(c.Request().Context(), d); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /v1/discounts/:id. Admins only.
func (h *DiscountHandler) Delete(c echo.Context) error {
	if !authz.CanManageDiscounts(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid discount id"})
	}
	if err := h.DiscountRepo.Delete(c.Request().Context(), id); err != nil {
		return domainErrJSON(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "discount deleted"})
}
