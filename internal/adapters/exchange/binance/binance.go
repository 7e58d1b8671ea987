package binanceadapter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"depthbot/internal/domain"
	"depthbot/internal/shared/retry"

	gbinance "github.com/adshao/go-binance/v2"
)

type BinanceExchange struct {
	client *gbinance.Client
	config domain.Config
}

func New(config domain.Config) *BinanceExchange {
	client := gbinance.NewClient("", "")
	// Чуть мягче таймаут: не висим долго, но и не рвём слишком быстро
	client.HTTPClient = &http.Client{Timeout: 7 * time.Second}
	return &BinanceExchange{client: client, config: config}
}

func (b *BinanceExchange) Name() string { return "Binance" }

func (b *BinanceExchange) FetchOrderBook(ctx context.Context, m domain.Market) (*domain.OrderBook, error) {
	// Поддерживаемые лимиты Binance
	allowed := []int{5, 10, 20, 50, 100, 500, 1000, 5000}
	chosen := allowed[len(allowed)-1]
	for _, v := range allowed {
		if b.config.Limit <= v {
			chosen = v
			break
		}
	}

	symbol := m.Major + m.Minor
	var resp *gbinance.DepthResponse
	// 2 попытки по 5s — компромисс между скоростью и стабильностью
	err := retry.WithRetry(2, 500*time.Millisecond, func() error {
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		var err error
		resp, err = b.client.NewDepthService().Symbol(symbol).Limit(chosen).Do(cctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("binance: стакан %s (limit=%d): %w", symbol, chosen, err)
	}

	ob := &domain.OrderBook{
		Bids: make(map[float64]float64, len(resp.Bids)),
		Asks: make(map[float64]float64, len(resp.Asks)),
	}
	for _, lvl := range resp.Bids {
		p, err1 := strconv.ParseFloat(lvl.Price, 64)
		q, err2 := strconv.ParseFloat(lvl.Quantity, 64)
		if err1 != nil || err2 != nil || p <= 0 || q <= 0 {
			continue
		}
		ob.Bids[p] = q
	}
	for _, lvl := range resp.Asks {
		p, err1 := strconv.ParseFloat(lvl.Price, 64)
		q, err2 := strconv.ParseFloat(lvl.Quantity, 64)
		if err1 != nil || err2 != nil || p <= 0 || q <= 0 {
			continue
		}
		ob.Asks[p] = q
	}
	return ob, nil
}
