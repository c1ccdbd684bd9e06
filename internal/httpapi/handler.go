// Package httpapi exposes the open issue aggregation over HTTP.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/naka-gawa/gitissues/internal/domain"
	"github.com/naka-gawa/gitissues/internal/metrics"
)

// Aggregator counts open issues of a repository per bucket.
type Aggregator interface {
	Aggregate(ctx context.Context, repo domain.Repository) domain.AggregateResponse
}

// SearchHandler serves GET /search.
type SearchHandler struct {
	aggregator Aggregator
	logger     *slog.Logger
}

func NewSearchHandler(aggregator Aggregator, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{aggregator: aggregator, logger: logger}
}

// Search resolves the githubUrl query parameter and responds with the per-bucket counts.
func (h *SearchHandler) Search(c echo.Context) error {
	repo, err := domain.ParseRepositoryURL(c.QueryParam("githubUrl"))
	if err != nil {
		metrics.RecordRejected()
		if errors.Is(err, domain.ErrInvalidRepositoryURL) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	resp := h.aggregator.Aggregate(c.Request().Context(), repo)
	return c.JSON(http.StatusOK, resp)
}

// Healthz reports liveness.
func Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
