package http

import (
	"net/http"

	mw "github.com/JohnClaps/heslgbmw-ltrs/internal/adapter/middleware"
	"github.com/JohnClaps/heslgbmw-ltrs/internal/usecase/stats"

	"github.com/labstack/echo/v4"
)

type StatsHandler struct{ uc *stats.Usecase }

func NewStatsHandler(uc *stats.Usecase) *StatsHandler { return &StatsHandler{uc: uc} }

func (h *StatsHandler) MyStats(c echo.Context) error {
	u, ok := mw.CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	}
	dto, err := h.uc.Borrower(c.Request().Context(), u.ID)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *StatsHandler) PortfolioStats(c echo.Context) error {
	dto, err := h.uc.Portfolio(c.Request().Context())
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
