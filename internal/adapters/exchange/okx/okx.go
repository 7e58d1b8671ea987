package okxadapter

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

// OKX использует формат "RPL-USDT".

type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient() *httpClient {
	return &httpClient{
		baseURL: "https://www.okx.com",
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

type okxExchange struct {
	http   *httpClient
	config domain.Config
}

func New(config domain.Config) domain.BookSource {
	return &okxExchange{
		http:   newHTTPClient(),
		config: config,
	}
}

func (o *okxExchange) Name() string { return "OKX" }

// ===== /market/books =====

type orderbookResp struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
	Data []struct {
		Asks [][]string `json:"asks"` // [[price, size, ...], ...]
		Bids [][]string `json:"bids"`
	} `json:"data"`
}

func (o *okxExchange) FetchOrderBook(ctx context.Context, m domain.Market) (*domain.OrderBook, error) {
	sz := 400 // максимум OKX
	if o.config.Limit > 0 && o.config.Limit < sz {
		sz = o.config.Limit
	}
	url := fmt.Sprintf("%s/api/v5/market/books?instId=%s-%s&sz=%d", o.http.baseURL, m.Major, m.Minor, sz)
	data, err := o.http.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("okx: ошибка запроса стакана: %w", err)
	}
	var resp orderbookResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("okx: ошибка парсинга стакана: %w", err)
	}
	if resp.Code != "0" || len(resp.Data) == 0 {
		return nil, fmt.Errorf("okx: API error: %s", resp.Msg)
	}

	ob := &domain.OrderBook{
		Bids: make(map[float64]float64, len(resp.Data[0].Bids)),
		Asks: make(map[float64]float64, len(resp.Data[0].Asks)),
	}
	fill(ob.Bids, resp.Data[0].Bids)
	fill(ob.Asks, resp.Data[0].Asks)
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
