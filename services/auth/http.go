package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookie carries the session token to the browser.
const SessionCookie = "yd_session"

func (s Service) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/register", s.handleRegister)
	g.POST("/auth/login", s.handleLogin)
	g.POST("/auth/logout", s.handleLogout)
}

type registerPayload struct {
	Username  string `json:"username" validate:"required,min=3"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

func (s Service) handleRegister(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid JSON body."})
	}
	if err := c.Validate(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid payload"})
	}

	user, err := s.Register(c.Request().Context(), RegisterRequest{
		Username:  payload.Username,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Password:  payload.Password,
	})
	if errors.Is(err, ErrUsernameTaken) {
		return c.JSON(http.StatusConflict, echo.Map{"message": "USERNAME_TAKEN"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

type loginPayload struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

func (s Service) handleLogin(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid JSON body."})
	}
	if err := c.Validate(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid payload"})
	}

	user, session, err := s.Login(c.Request().Context(), payload.Username, payload.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	setSessionCookie(c, session.Token, session.ExpiresAt)
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func (s Service) handleLogout(c echo.Context) error {
	cookie, err := c.Cookie(SessionCookie)
	if err == nil && cookie.Value != "" {
		err = s.Logout(c.Request().Context(), cookie.Value)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	setSessionCookie(c, "", time.Unix(0, 0))
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  expires,
	})
}

// SessionUserFromRequest resolves the session cookie on a request, for
// handlers outside this package that need the authenticated user.
func (s Service) SessionUserFromRequest(c echo.Context) (User, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return User{}, ErrNoSession
	}
	return s.SessionUser(c.Request().Context(), cookie.Value)
}
