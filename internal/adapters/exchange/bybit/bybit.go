package bybitadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"depthbot/internal/domain"
	"depthbot/internal/shared/retry"
)

// Bybit принимает слитный символ "RPLUSDT".

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{
		baseURL: "https://api.bybit.com",
		client:  &http.Client{Timeout: 7 * time.Second},
	}
}

func (c *httpClient) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.WithRetry(2, 400*time.Millisecond, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %s", resp.Status)
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	return body, err
}

type bybitExchange struct {
	http   *httpClient
	config domain.Config
}

func New(config domain.Config) domain.BookSource {
	return &bybitExchange{
		http:   newHTTPClient(),
		config: config,
	}
}

func (b *bybitExchange) Name() string { return "Bybit" }

type orderbookResp struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  struct {
		Bids [][]string `json:"b"`
		Asks [][]string `json:"a"`
	} `json:"result"`
}

func (b *bybitExchange) FetchOrderBook(ctx context.Context, m domain.Market) (*domain.OrderBook, error) {
	limit := 200 // максимум spot-стакана Bybit
	if b.config.Limit > 0 && b.config.Limit < limit {
		limit = b.config.Limit
	}
	url := fmt.Sprintf("%s/v5/market/orderbook?category=spot&symbol=%s%s&limit=%d",
		b.http.baseURL, m.Major, m.Minor, limit)
	data, err := b.http.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("bybit: ошибка запроса стакана: %w", err)
	}
	var resp orderbookResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("bybit: ошибка парсинга стакана: %w", err)
	}
	if resp.RetCode != 0 {
		return nil, fmt.Errorf("bybit: API error: %s", resp.RetMsg)
	}

	ob := &domain.OrderBook{
		Bids: make(map[float64]float64, len(resp.Result.Bids)),
		Asks: make(map[float64]float64, len(resp.Result.Asks)),
	}
	fill(ob.Bids, resp.Result.Bids)
	fill(ob.Asks, resp.Result.Asks)
	return ob, nil
}

func fill(dst map[float64]float64, levels [][]string) {
	for _, lvl := range levels {
		if len(lvl) < 2 {
			continue
		}
		p, err1 := strconv.ParseFloat(lvl[0], 64)
		q, err2 := strconv.ParseFloat(lvl[1], 64)
		if err1 != nil || err2 != nil || p <= 0 || q <= 0 {
			continue
		}
		dst[p] = q
	}
}
