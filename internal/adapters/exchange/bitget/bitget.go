package bitgetadapter

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

// Bitget использует формат "RPLUSDT". Максимальная глубина 150 уровней.

const maxLimit = 150

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{
		baseURL: "https://api.bitget.com",
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

type bitgetExchange struct {
	http   *httpClient
	config domain.Config
}

func New(config domain.Config) domain.BookSource {
	return &bitgetExchange{
		http:   newHTTPClient(),
		config: config,
	}
}

func (b *bitgetExchange) Name() string { return "Bitget" }

type orderbookResp struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Bids [][]string `json:"bids"`
		Asks [][]string `json:"asks"`
	} `json:"data"`
}

func (b *bitgetExchange) FetchOrderBook(ctx context.Context, m domain.Market) (*domain.OrderBook, error) {
	limit := b.config.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}
	url := fmt.Sprintf("%s/api/v2/spot/market/orderbook?symbol=%s%s&limit=%d", b.http.baseURL, m.Major, m.Minor, limit)
	data, err := b.http.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("bitget: ошибка запроса стакана: %w", err)
	}
	var resp orderbookResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("bitget: ошибка парсинга стакана: %w", err)
	}
	if resp.Code != "00000" {
		return nil, fmt.Errorf("bitget: API error: code=%s msg=%s", resp.Code, resp.Msg)
	}

	ob := &domain.OrderBook{
		Bids: make(map[float64]float64, len(resp.Data.Bids)),
		Asks: make(map[float64]float64, len(resp.Data.Asks)),
	}
	fill(ob.Bids, resp.Data.Bids)
	fill(ob.Asks, resp.Data.Asks)
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
