package provider

// cmcStatus is the status envelope present on every CMC response.
type cmcStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

// cmcOHLCVResponse from GET /v2/cryptocurrency/ohlcv/historical.
type cmcOHLCVResponse struct {
	Status cmcStatus    `json:"status"`
	Data   cmcOHLCVData `json:"data"`
}

type cmcOHLCVData struct {
	ID     int64           `json:"id"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Quotes []cmcOHLCVQuote `json:"quotes"`
}

type cmcOHLCVQuote struct {
	TimeOpen  string `json:"time_open"`
	TimeClose string `json:"time_close"`
	Quote     struct {
		USD struct {
			Open   float64 `json:"open"`
			High   float64 `json:"high"`
			Low    float64 `json:"low"`
			Close  float64 `json:"close"`
			Volume float64 `json:"volume"`
		} `json:"USD"`
	} `json:"quote"`
}

// cmcQuotesResponse from GET /v1/cryptocurrency/quotes/latest. Data is keyed
// by numeric id or symbol depending on the request parameter.
type cmcQuotesResponse struct {
	Status cmcStatus               `json:"status"`
	Data   map[string]cmcQuoteData `json:"data"`
}

type cmcQuoteData struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Slug   string `json:"slug"`
	Quote  struct {
		USD struct {
			Price            float64 `json:"price"`
			Volume24h        float64 `json:"volume_24h"`
			PercentChange24h float64 `json:"percent_change_24h"`
			MarketCap        float64 `json:"market_cap"`
			LastUpdated      string  `json:"last_updated"`
		} `json:"USD"`
	} `json:"quote"`
}
