package insightapi

type CountResponse struct {
	Count int64 `json:"count"`
}

type TenantResponse struct {
	TenantID string `json:"tenant_id"`
}

type TitleResponse struct {
	Title string `json:"title"`
}

type ForecastResponse struct {
	IntervalWidth int64     `json:"interval_width"`
	Intervals     int       `json:"intervals"`
	GrowthRates   []float64 `json:"growth_rates"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
