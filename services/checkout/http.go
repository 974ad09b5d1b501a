package checkout

import (
	"errors"
	"net/http"

	"yachtdrop-backend/services/auth"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	auth auth.Service
}

func NewHandler(authService auth.Service) Handler {
	return Handler{auth: authService}
}

func (h Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/checkout", h.handleCheckout)
}

func (h Handler) handleCheckout(c echo.Context) error {
	_, err := h.auth.SessionUserFromRequest(c)
	if errors.Is(err, auth.ErrNoSession) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "AUTH_REQUIRED"})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var order Order
	if err := c.Bind(&order); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid JSON body."})
	}
	if err := c.Validate(&order); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Payload checkout invalide.",
			"errors":  err.Error(),
		})
	}
	if err := ValidateMethodFields(order); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Payload checkout invalide.",
			"errors":  err.Error(),
		})
	}

	confirmationId, err := NewConfirmationId()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"confirmationId": confirmationId,
		"message":        "Commande mock créée avec succès.",
	})
}
