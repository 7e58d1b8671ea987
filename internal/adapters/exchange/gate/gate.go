package gateadapter

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

// Gate.io использует формат "RPL_USDT". Максимальная глубина 1000 уровней.

const maxLimit = 1000

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{
		baseURL: "https://api.gateio.ws",
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

type gateExchange struct {
	http   *httpClient
	config domain.Config
}

func New(config domain.Config) domain.BookSource {
	return &gateExchange{
		http:   newHTTPClient(),
		config: config,
	}
}

func (g *gateExchange) Name() string { return "Gate.io" }

type orderbookResp struct {
	Bids [][]string `json:"bids"`
	Asks [][]string `json:"asks"`
}

func (g *gateExchange) FetchOrderBook(ctx context.Context, m domain.Market) (*domain.OrderBook, error) {
	limit := g.config.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	url := fmt.Sprintf("%s/api/v4/spot/order_book?currency_pair=%s_%s&limit=%d", g.http.baseURL, m.Major, m.Minor, limit)
	data, err := g.http.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("gate: ошибка запроса стакана: %w", err)
	}
	var resp orderbookResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("gate: ошибка парсинга стакана: %w", err)
	}

	ob := &domain.OrderBook{
		Bids: make(map[float64]float64, len(resp.Bids)),
		Asks: make(map[float64]float64, len(resp.Asks)),
	}
	fill(ob.Bids, resp.Bids)
	fill(ob.Asks, resp.Asks)
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
