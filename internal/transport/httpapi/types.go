package httpapi

// MarketDepth — глубина одного рынка на целевой цене.
type MarketDepth struct {
	Price  float64 `json:"price"`  // референсная цена
	Target float64 `json:"target"` // целевая цена из запроса
	Depth  float64 `json:"depth"`  // объём до целевой цены
}

type LiquidityResponse struct {
	GeneratedAt string                            `json:"generatedAt"`
	Target      float64                           `json:"target"`
	Venues      map[string]map[string]MarketDepth `json:"venues"`
}

type VenuesResponse struct {
	Venues []string `json:"venues"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
