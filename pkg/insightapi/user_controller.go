package insightapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserController struct {
	querier Querier
}

func NewUserController(querier Querier) *UserController {
	return &UserController{querier: querier}
}

func (c *UserController) GetLazyUsers(ctx echo.Context) error {
	userIDs, err := c.querier.LazyUsers()
	if err != nil {
		return queryErrorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, userIDs)
}
