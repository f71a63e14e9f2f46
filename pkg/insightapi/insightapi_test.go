package insightapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/materials-commons/mcinsight/pkg/insightapi/apimiddleware"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
	"github.com/materials-commons/mcinsight/pkg/tutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*echo.Echo, *apimiddleware.HTTPMetrics) {
	f := tutil.NewFixture(t)

	f.Tenant("t1", "bright-purple-cat", false).
		Tenant("t2", "icy-green-dog", false)

	f.User("u1", "t1", false).
		User("u2", "t1", false).
		User("u3", "t2", false)

	f.Model("m1", "t1", "beta", false).
		Model("m2", "t1", "Alpha", false).
		Model("m3", "t2", "gamma", false)

	f.Revision("r1", "m1", "u1", 0, 100, false).
		Revision("r2", "m1", "u1", 1, 150, false).
		Revision("r3", "m2", "u1", 0, 260, false).
		Revision("r4", "m3", "u3", 0, 90, false)

	metrics := apimiddleware.NewHTTPMetrics(ServiceName)
	e := NewServer(RouteOpts{Querier: insight.NewQuerier(f.DB), Metrics: metrics})
	return e, metrics
}

func get(t *testing.T, e *echo.Echo, target string, result interface{}) int {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if result != nil && rec.Code == http.StatusOK {
		require.NoErrorf(t, json.Unmarshal(rec.Body.Bytes(), result), "decoding %s", rec.Body.String())
	}

	return rec.Code
}

func TestTenantRoutes(t *testing.T) {
	e, _ := newTestServer(t)

	var count CountResponse
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/purple/count", &count))
	assert.Equal(t, int64(1), count.Count)

	var tenants []string
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/active", &tenants))
	assert.Equal(t, []string{"t1", "t2"}, tenants)

	var largest []insight.TenantCount
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/largest", &largest))
	assert.Equal(t, []insight.TenantCount{{TenantID: "t1", Total: 2}}, largest)

	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/largest/model-count", &count))
	assert.Equal(t, int64(2), count.Count)

	var tenant TenantResponse
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/revision-heaviest", &tenant))
	assert.Equal(t, "t1", tenant.TenantID)

	var title TitleResponse
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/revision-heaviest/latest-model", &title))
	assert.Equal(t, "Alpha", title.Title)

	var users []imodel.User
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/t1/most-active-users", &users))
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)

	var titles []string
	require.Equal(t, http.StatusOK, get(t, e, "/api/tenants/t1/model-titles?case_sensitive=true", &titles))
	assert.Equal(t, []string{"Alpha", "beta"}, titles)

	require.Equal(t, http.StatusBadRequest, get(t, e, "/api/tenants/t1/model-titles?case_sensitive=maybe", nil))
}

func TestUserAndModelRoutes(t *testing.T) {
	e, _ := newTestServer(t)

	var lazy []string
	require.Equal(t, http.StatusOK, get(t, e, "/api/users/lazy", &lazy))
	assert.Equal(t, []string{"u2"}, lazy)

	var revisions []imodel.ModelRevision
	require.Equal(t, http.StatusOK, get(t, e, "/api/models/m1/revisions", &revisions))
	require.Len(t, revisions, 2)
	assert.Equal(t, "r1", revisions[0].ID)
	assert.Equal(t, int64(150), revisions[1].CreationDate)

	require.Equal(t, http.StatusOK, get(t, e, "/api/models/unknown/revisions", &revisions))
	assert.Empty(t, revisions)
}

func TestForecastRoute(t *testing.T) {
	e, _ := newTestServer(t)

	var forecast ForecastResponse
	require.Equal(t, http.StatusOK, get(t, e, "/api/forecast?interval_width=50&intervals=3", &forecast))
	assert.Equal(t, int64(50), forecast.IntervalWidth)
	assert.Len(t, forecast.GrowthRates, 3)

	tests := []struct {
		target string
		status int
	}{
		{target: "/api/forecast?intervals=3", status: http.StatusBadRequest},
		{target: "/api/forecast?interval_width=50", status: http.StatusBadRequest},
		{target: "/api/forecast?interval_width=0&intervals=3", status: http.StatusBadRequest},
		{target: "/api/forecast?interval_width=50&intervals=-1", status: http.StatusBadRequest},
		{target: fmt.Sprintf("/api/forecast?interval_width=50&intervals=%d", insight.MaxForecastIntervals+1), status: http.StatusBadRequest},
		{target: "/api/forecast?interval_width=50&intervals=2305843009213693952", status: http.StatusBadRequest},
		{target: "/api/forecast?interval_width=100000&intervals=3", status: http.StatusUnprocessableEntity},
	}

	for _, test := range tests {
		t.Run(test.target, func(t *testing.T) {
			require.Equal(t, test.status, get(t, e, test.target, nil))
		})
	}
}

func TestMetricsRoute(t *testing.T) {
	e, metrics := newTestServer(t)

	get(t, e, "/api/tenants/active", nil)
	get(t, e, "/api/users/lazy", nil)
	get(t, e, "/api/no-such-route", nil)

	totals, err := metrics.Totals()
	require.NoError(t, err)
	assert.Equal(t, float64(3), totals["http_requests_total"])
	assert.Equal(t, float64(3), totals["http_request_duration_seconds"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/tenants/active",service="mcinsight",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `status="404"`)
}

type failingQuerier struct {
	Querier
}

func (failingQuerier) LazyUsers() ([]string, error) {
	return nil, fmt.Errorf("database is locked")
}

func TestQueryFailureIsInternalError(t *testing.T) {
	controller := NewUserController(failingQuerier{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/lazy", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.GetLazyUsers(ctx))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "query failed", resp.Error)
}

func TestControllerPathParam(t *testing.T) {
	f := tutil.NewFixture(t)
	f.Tenant("t9", "n", false).
		Model("m1", "t9", "zeta", false).
		Model("m2", "t9", "Eta", false)

	controller := NewTenantController(insight.NewQuerier(f.DB))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetPath("/api/tenants/:id/model-titles")
	ctx.SetParamNames("id")
	ctx.SetParamValues("t9")

	require.NoError(t, controller.GetOrderedActiveModelTitles(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var titles []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &titles))
	assert.Equal(t, []string{"Eta", "zeta"}, titles)
}
