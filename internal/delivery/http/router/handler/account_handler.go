package handler

import (
	"log/slog"
	"net/http"

	"campus/internal/delivery/http/response"
	"campus/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for the administrative account handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles account provisioning.
func (h *AccountHandler) Register(c echo.Context) error {
	var input *usecase.RegisterAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account registered successfully")
}

// Activate transitions a pending account to active.
func (h *AccountHandler) Activate(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	output, err := h.uc.Activate(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Account activated")
}

// Unblock reactivates a blocked account.
func (h *AccountHandler) Unblock(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	output, err := h.uc.Unblock(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Account unblocked")
}

// Block permanently blocks an account until manual intervention.
func (h *AccountHandler) Block(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	output, err := h.uc.BlockPermanently(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Account blocked")
}

type linkEntityRequest struct {
	EntityID uuid.UUID `json:"entityId" validate:"required"`
}

// LinkEntity ties an account to a platform record.
func (h *AccountHandler) LinkEntity(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	var req *linkEntityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid link input")
	}
	if err := c.Validate(req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Entity id is required")
	}

	output, err := h.uc.LinkEntity(c.Request().Context(), accountID, req.EntityID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Entity linked")
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// ChangePassword replaces an account's password.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	accountID, err := accountIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	var req *changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "New password is required")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		AccountID:   accountID,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}

func accountIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
