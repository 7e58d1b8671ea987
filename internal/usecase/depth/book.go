package depth

import (
	"sort"

	"depthbot/internal/domain"
)

// BookCurve — кривая глубины по стакану: отсортированные цены уровней и
// кумулятивная котировочная глубина по каждой стороне. После построения
// массивы не меняются.
type BookCurve struct {
	price float64

	bidPrices []float64 // по убыванию
	bidDepth  []float64
	askPrices []float64 // по возрастанию
	askDepth  []float64
}

// FromOrderBook строит кривую глубины по стакану.
// Обе стороны обязаны быть непустыми, иначе ErrNoLiquidity: стакан без одной
// из сторон — это "нет ликвидности", а не кривая с нулевой глубиной.
func FromOrderBook(ob *domain.OrderBook) (*BookCurve, error) {
	if ob == nil || len(ob.Bids) == 0 || len(ob.Asks) == 0 {
		return nil, ErrNoLiquidity
	}

	bidPrices := make([]float64, 0, len(ob.Bids))
	for p := range ob.Bids {
		bidPrices = append(bidPrices, p)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(bidPrices)))

	askPrices := make([]float64, 0, len(ob.Asks))
	for p := range ob.Asks {
		askPrices = append(askPrices, p)
	}
	sort.Float64s(askPrices)

	// кумулятивная глубина в валюте котировки: цена * объём уровня
	bidDepth := make([]float64, len(bidPrices))
	var sum float64
	for i, p := range bidPrices {
		sum += p * ob.Bids[p]
		bidDepth[i] = sum
	}

	askDepth := make([]float64, len(askPrices))
	sum = 0
	for i, p := range askPrices {
		sum += p * ob.Asks[p]
		askDepth[i] = sum
	}

	return &BookCurve{
		price:     (bidPrices[0] + askPrices[0]) / 2,
		bidPrices: bidPrices,
		bidDepth:  bidDepth,
		askPrices: askPrices,
		askDepth:  askDepth,
	}, nil
}

func (c *BookCurve) Price() float64 { return c.price }

// DepthAt — кумулятивный объём между серединой спреда и целевой ценой.
// Внутри спреда глубина нулевая; цена, равная цене уровня, уровень включает.
func (c *BookCurve) DepthAt(target float64) float64 {
	maxBid := c.bidPrices[0]
	minAsk := c.askPrices[0]
	if maxBid < target && target < minAsk {
		return 0
	}

	if target <= maxBid {
		// сколько бидов съедается на пути вниз до target
		i := sort.Search(len(c.bidPrices), func(k int) bool { return c.bidPrices[k] < target })
		return c.bidDepth[i-1]
	}
	i := sort.Search(len(c.askPrices), func(k int) bool { return c.askPrices[k] > target })
	return c.askDepth[i-1]
}
