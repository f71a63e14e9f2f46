package insightapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type TenantController struct {
	querier Querier
}

func NewTenantController(querier Querier) *TenantController {
	return &TenantController{querier: querier}
}

func (c *TenantController) GetPurpleTenantsCount(ctx echo.Context) error {
	count, err := c.querier.PurpleTenantsCount()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (c *TenantController) GetActiveTenants(ctx echo.Context) error {
	tenantIDs, err := c.querier.ActiveTenants()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, tenantIDs)
}

func (c *TenantController) GetLargestTenants(ctx echo.Context) error {
	largest, err := c.querier.LargestTenants()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, largest)
}

func (c *TenantController) GetModelCountOfLargestTenant(ctx echo.Context) error {
	count, err := c.querier.ModelCountOfLargestTenant()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (c *TenantController) GetRevisionHeaviestTenant(ctx echo.Context) error {
	tenantID, err := c.querier.RevisionHeaviestTenant()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TenantResponse{TenantID: tenantID})
}

func (c *TenantController) GetRevisionHeaviestTenantLatestModelTitle(ctx echo.Context) error {
	title, err := c.querier.RevisionHeaviestTenantLatestModelTitle()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TitleResponse{Title: title})
}

func (c *TenantController) GetMostActiveUsers(ctx echo.Context) error {
	users, err := c.querier.MostActiveUsers(ctx.Param("id"))
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, users)
}

// GetOrderedActiveModelTitles sorts case insensitively unless the
// case_sensitive query parameter is true.
func (c *TenantController) GetOrderedActiveModelTitles(ctx echo.Context) error {
	caseSensitive := false
	if value := ctx.QueryParam("case_sensitive"); value != "" {
		var err error
		if caseSensitive, err = strconv.ParseBool(value); err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "Invalid case_sensitive value")
		}
	}

	titles, err := c.querier.OrderedActiveModelTitles(ctx.Param("id"), caseSensitive)
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, titles)
}
