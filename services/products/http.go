package products

import (
	"errors"
	"net/http"
	"strconv"

	"yachtdrop-backend/lib/scrapers/nautic"

	"github.com/labstack/echo/v4"
)

type listResponse struct {
	Products []nautic.Product `json:"products"`
	Cached   bool             `json:"cached"`
	Degraded bool             `json:"degraded,omitempty"`
}

func (s *Service) RegisterRoutes(g *echo.Group) {
	g.GET("/products", s.handleGetProducts)
	g.GET("/catalog/search", s.handleSearchCatalog)
}

func pageParam(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Service) handleGetProducts(c echo.Context) error {
	q := c.QueryParam("q")
	page := pageParam(c)

	result, err := s.GetProducts(c.Request().Context(), c.RealIP(), q, page)
	if errors.Is(err, ErrRateLimited) {
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"message": "Rate limit exceeded.",
		})
	}
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{
			"message": "La source produit est indisponible pour le moment.",
		})
	}

	return c.JSON(http.StatusOK, listResponse{
		Products: emptyNotNull(result.Products),
		Cached:   result.Cached,
		Degraded: result.Degraded,
	})
}

func (s *Service) handleSearchCatalog(c echo.Context) error {
	products := s.SearchCatalog(c.Request().Context(), c.QueryParam("q"), pageParam(c))
	return c.JSON(http.StatusOK, listResponse{
		Products: emptyNotNull(products),
	})
}

// the products field is a json array even when there is nothing in it
func emptyNotNull(products []nautic.Product) []nautic.Product {
	if products == nil {
		return []nautic.Product{}
	}
	return products
}
