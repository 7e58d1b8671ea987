package htxadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"depthbot/internal/domain"
	"depthbot/internal/shared/retry"
)

// HTX (бывший Huobi) использует формат "rplusdt" в нижнем регистре.
// Уровни приходят числами, а не строками. step0 отдаёт полный стакан
// без агрегации по цене.

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{
		baseURL: "https://api.huobi.pro",
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

type htxExchange struct {
	http   *httpClient
	config domain.Config
}

func New(config domain.Config) domain.BookSource {
	return &htxExchange{
		http:   newHTTPClient(),
		config: config,
	}
}

func (h *htxExchange) Name() string { return "HTX" }

type orderbookResp struct {
	Status string `json:"status"`
	ErrMsg string `json:"err-msg"`
	Tick   struct {
		Bids [][]float64 `json:"bids"`
		Asks [][]float64 `json:"asks"`
	} `json:"tick"`
}

func (h *htxExchange) FetchOrderBook(ctx context.Context, m domain.Market) (*domain.OrderBook, error) {
	symbol := strings.ToLower(m.Major + m.Minor)
	url := fmt.Sprintf("%s/market/depth?symbol=%s&type=step0", h.http.baseURL, symbol)
	data, err := h.http.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("htx: ошибка запроса стакана: %w", err)
	}
	var resp orderbookResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("htx: ошибка парсинга стакана: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("htx: API error: %s", resp.ErrMsg)
	}

	ob := &domain.OrderBook{
		Bids: make(map[float64]float64, len(resp.Tick.Bids)),
		Asks: make(map[float64]float64, len(resp.Tick.Asks)),
	}
	fill(ob.Bids, resp.Tick.Bids)
	fill(ob.Asks, resp.Tick.Asks)
	return ob, nil
}

func fill(dst map[float64]float64, levels [][]float64) {
	for _, lvl := range levels {
		if len(lvl) < 2 {
			continue
		}
		p, q := lvl[0], lvl[1]
		if p <= 0 || q <= 0 {
			continue
		}
		dst[p] = q
	}
}
