package insightclient

import (
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/materials-commons/mcinsight/pkg/insight"
	"github.com/materials-commons/mcinsight/pkg/insightapi"
	"github.com/materials-commons/mcinsight/pkg/insightdb/imodel"
)

// Client calls the mcinsight query API. Every method maps to one route.
type Client struct {
	rc *resty.Client
}

func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json")

	return &Client{rc: rc}
}

// get fetches path into result, converting error statuses with
// ToErrorFromResponse.
func (c *Client) get(path string, query map[string]string, result interface{}) error {
	resp, err := c.rc.R().
		SetQueryParams(query).
		SetResult(result).
		Get("/api" + path)

	if err != nil {
		return err
	}

	if resp.IsError() {
		return ToErrorFromResponse(resp)
	}

	return nil
}

func (c *Client) GetPurpleTenantsCount() (int64, error) {
	var resp insightapi.CountResponse
	err := c.get("/tenants/purple/count", nil, &resp)
	return resp.Count, err
}

func (c *Client) GetActiveTenants() ([]string, error) {
	var tenantIDs []string
	err := c.get("/tenants/active", nil, &tenantIDs)
	return tenantIDs, err
}

func (c *Client) GetLargestTenants() ([]insight.TenantCount, error) {
	var largest []insight.TenantCount
	err := c.get("/tenants/largest", nil, &largest)
	return largest, err
}

func (c *Client) GetModelCountOfLargestTenant() (int64, error) {
	var resp insightapi.CountResponse
	err := c.get("/tenants/largest/model-count", nil, &resp)
	return resp.Count, err
}

func (c *Client) GetRevisionHeaviestTenant() (string, error) {
	var resp insightapi.TenantResponse
	err := c.get("/tenants/revision-heaviest", nil, &resp)
	return resp.TenantID, err
}

func (c *Client) GetRevisionHeaviestTenantLatestModelTitle() (string, error) {
	var resp insightapi.TitleResponse
	err := c.get("/tenants/revision-heaviest/latest-model", nil, &resp)
	return resp.Title, err
}

func (c *Client) GetMostActiveUsers(tenantID string) ([]imodel.User, error) {
	var users []imodel.User
	err := c.get("/tenants/"+url.PathEscape(tenantID)+"/most-active-users", nil, &users)
	return users, err
}

func (c *Client) GetOrderedActiveModelTitles(tenantID string, caseSensitive bool) ([]string, error) {
	var titles []string
	query := map[string]string{"case_sensitive": strconv.FormatBool(caseSensitive)}
	err := c.get("/tenants/"+url.PathEscape(tenantID)+"/model-titles", query, &titles)
	return titles, err
}

func (c *Client) GetLazyUsers() ([]string, error) {
	var userIDs []string
	err := c.get("/users/lazy", nil, &userIDs)
	return userIDs, err
}

func (c *Client) GetChronologicalModelRevisions(modelID string) ([]imodel.ModelRevision, error) {
	var revisions []imodel.ModelRevision
	err := c.get("/models/"+url.PathEscape(modelID)+"/revisions", nil, &revisions)
	return revisions, err
}

func (c *Client) GetForecastedModelRevisionGrowthRate(intervalWidth int64, intervals int) ([]float64, error) {
	var resp insightapi.ForecastResponse
	query := map[string]string{
		"interval_width": strconv.FormatInt(intervalWidth, 10),
		"intervals":      strconv.Itoa(intervals),
	}
	err := c.get("/forecast", query, &resp)
	return resp.GrowthRates, err
}
