package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"musafir/pkg/auth/controller"
	"musafir/pkg/middleware"
	"musafir/pkg/user"
	"musafir/pkg/user/service"
)

type authCtrl struct{ users service.UserService }

func NewAuthController(users service.UserService) controller.AuthController {
	return &authCtrl{users: users}
}

func (h *authCtrl) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	u, err := h.users.Authenticate(c.Request().Context(), body.Email, body.Password)
	if errors.Is(err, user.ErrBadCredentials) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	middleware.SetUser(c, u.UserID)
	return c.JSON(http.StatusOK, u)
}

func (h *authCtrl) Logout(c echo.Context) error {
	middleware.ClearUser(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid := middleware.UserID(c)
	if uid == nil {
		return c.JSON(http.StatusOK, map[string]any{"uid": nil})
	}
	u, err := h.users.Get(c.Request().Context(), *uid)
	if err != nil {
		// the id is unverified, so an unknown user is just reported as such
		return c.JSON(http.StatusOK, map[string]any{"uid": *uid})
	}
	return c.JSON(http.StatusOK, map[string]any{"uid": *uid, "user": u})
}
