package insightapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ModelController struct {
	querier Querier
}

func NewModelController(querier Querier) *ModelController {
	return &ModelController{querier: querier}
}

func (c *ModelController) GetChronologicalModelRevisions(ctx echo.Context) error {
	revisions, err := c.querier.ChronologicalModelRevisions(ctx.Param("id"))
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, revisions)
}

// GetForecast expects the interval_width and intervals query parameters.
func (c *ModelController) GetForecast(ctx echo.Context) error {
	intervalWidth, err := strconv.ParseInt(ctx.QueryParam("interval_width"), 10, 64)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid interval_width")
	}

	intervals, err := strconv.Atoi(ctx.QueryParam("intervals"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid intervals")
	}

	rates, err := c.querier.ForecastedModelRevisionGrowthRate(intervalWidth, intervals)
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ForecastResponse{
		IntervalWidth: intervalWidth,
		Intervals:     intervals,
		GrowthRates:   rates,
	})
}
