package insightapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/mcinsight/pkg/clog"
	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/pkg/errors"
)

func errorResponse(ctx echo.Context, httpError int, msg string) error {
	return ctx.JSON(httpError, ErrorResponse{Error: msg})
}

// queryErrorResponse maps the insight error kinds to a status code.
func queryErrorResponse(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, insight.ErrInvalidArgument):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, insight.ErrDivisionByZero):
		return errorResponse(ctx, http.StatusUnprocessableEntity, err.Error())
	default:
		clog.UsingCtx(clog.APICtx).Errorf("%s %s failed: %s", ctx.Request().Method, ctx.Path(), err)
		return errorResponse(ctx, http.StatusInternalServerError, "query failed")
	}
}
