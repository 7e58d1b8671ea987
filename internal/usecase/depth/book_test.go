package depth

import (
	"math"
	"testing"

	"depthbot/internal/domain"
)

func book(bids, asks map[float64]float64) *domain.OrderBook {
	return &domain.OrderBook{Bids: bids, Asks: asks}
}

func TestFromOrderBookScenario(t *testing.T) {
	c, err := FromOrderBook(book(
		map[float64]float64{100: 1, 99: 2},
		map[float64]float64{101: 1, 102: 2},
	))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.Price() != 100.5 {
		t.Fatalf("price=%.4f want=100.5", c.Price())
	}
	// вниз до 99 съедаются оба бида
	if got := c.DepthAt(99); got != 100*1+99*2 {
		t.Fatalf("DepthAt(99)=%.4f want=298", got)
	}
	// внутри спреда глубина нулевая
	if got := c.DepthAt(100.5); got != 0 {
		t.Fatalf("DepthAt(100.5)=%.4f want=0", got)
	}
	if got := c.DepthAt(102); got != 101*1+102*2 {
		t.Fatalf("DepthAt(102)=%.4f want=305", got)
	}
	// повторный вызов обязан дать то же значение
	if a, b := c.DepthAt(102), c.DepthAt(102); a != b {
		t.Fatalf("повторный вызов: %.4f != %.4f", a, b)
	}
}

func TestFromOrderBookBoundaries(t *testing.T) {
	c, err := FromOrderBook(book(
		map[float64]float64{100: 1, 99: 2},
		map[float64]float64{101: 1, 102: 2},
	))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	// цена, равная цене уровня, включает уровень с обеих сторон
	if got := c.DepthAt(100); got != 100 {
		t.Fatalf("DepthAt(best bid)=%.4f want=100", got)
	}
	if got := c.DepthAt(101); got != 101 {
		t.Fatalf("DepthAt(best ask)=%.4f want=101", got)
	}
	if c.DepthAt(100) <= 0 || c.DepthAt(101) <= 0 {
		t.Fatalf("глубина на краях спреда должна быть положительной")
	}
}

func TestFromOrderBookMonotonic(t *testing.T) {
	c, err := FromOrderBook(book(
		map[float64]float64{100: 1, 99.5: 3, 98: 0.5, 95: 10},
		map[float64]float64{101: 2, 103: 1, 110: 7},
	))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	prev := 0.0
	for p := 100.0; p >= 90; p -= 0.25 {
		got := c.DepthAt(p)
		if got < prev {
			t.Fatalf("глубина по бидам убыла: DepthAt(%.2f)=%.4f < %.4f", p, got, prev)
		}
		prev = got
	}
	prev = 0.0
	for p := 101.0; p <= 115; p += 0.25 {
		got := c.DepthAt(p)
		if got < prev {
			t.Fatalf("глубина по аскам убыла: DepthAt(%.2f)=%.4f < %.4f", p, got, prev)
		}
		prev = got
	}
	// за последним уровнем глубина насыщается
	if got, want := c.DepthAt(1), c.DepthAt(90); got != want {
		t.Fatalf("насыщение по бидам: %.4f != %.4f", got, want)
	}
	if got, want := c.DepthAt(1e6), c.DepthAt(115); got != want {
		t.Fatalf("насыщение по аскам: %.4f != %.4f", got, want)
	}
}

func TestFromOrderBookEmptySide(t *testing.T) {
	cases := []*domain.OrderBook{
		book(map[float64]float64{100: 1}, nil),
		book(nil, map[float64]float64{101: 1}),
		book(nil, nil),
		nil,
	}
	for i, ob := range cases {
		if _, err := FromOrderBook(ob); err != ErrNoLiquidity {
			t.Fatalf("case %d: err=%v want=ErrNoLiquidity", i, err)
		}
	}
}

func TestFromOrderBookSpreadZero(t *testing.T) {
	c, err := FromOrderBook(book(
		map[float64]float64{100: 1},
		map[float64]float64{104: 1},
	))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	for p := 100.01; p < 104; p += 0.5 {
		if got := c.DepthAt(p); got != 0 {
			t.Fatalf("DepthAt(%.2f)=%.4f want=0 (внутри спреда)", p, got)
		}
	}
	if math.Abs(c.Price()-102) > 1e-12 {
		t.Fatalf("price=%.4f want=102", c.Price())
	}
}
