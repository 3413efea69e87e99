package controllerImp

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"musafir/pkg/middleware"
	"musafir/pkg/user"
	"musafir/pkg/user/controller"
	"musafir/pkg/user/service"
)

type userCtrl struct{ s service.UserService }

func New(s service.UserService) controller.UserController { return &userCtrl{s: s} }

func (h *userCtrl) Create(c echo.Context) error {
	var body service.Registration
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	u, err := h.s.Register(c.Request().Context(), body)
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	middleware.SetUser(c, u.UserID)
	return c.JSON(http.StatusCreated, u)
}

func (h *userCtrl) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}
	u, err := h.s.Get(c.Request().Context(), uint(id))
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}

// UpdatePreferences replaces the preferences of the calling user.
func (h *userCtrl) UpdatePreferences(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "user id required"})
	}
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, 64<<10))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	u, err := h.s.UpdatePreferences(c.Request().Context(), *uid, json.RawMessage(body))
	if err != nil {
		return c.JSON(statusFor(err), map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, u)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, user.ErrEmailTaken):
		return http.StatusConflict
	case errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrPasswordTooWeak),
		errors.Is(err, user.ErrInvalidPreferences):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrBadCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
