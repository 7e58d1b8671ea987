package venue

import (
	"context"
	"errors"
	"testing"

	"depthbot/internal/domain"
	"depthbot/internal/usecase/depth"
)

// fakeSource отдаёт заготовленные стаканы по паре
type fakeSource struct {
	books map[domain.Market]*domain.OrderBook
	errs  map[domain.Market]error
}

func (f *fakeSource) Name() string { return "Fake" }

func (f *fakeSource) FetchOrderBook(_ context.Context, m domain.Market) (*domain.OrderBook, error) {
	if err := f.errs[m]; err != nil {
		return nil, err
	}
	return f.books[m], nil
}

func TestCEXPartialFailure(t *testing.T) {
	usdt := domain.Market{Major: "RPL", Minor: "USDT"}
	usdc := domain.Market{Major: "RPL", Minor: "USDC"}
	eur := domain.Market{Major: "RPL", Minor: "EUR"}

	src := &fakeSource{
		books: map[domain.Market]*domain.OrderBook{
			usdt: {
				Bids: map[float64]float64{100: 1},
				Asks: map[float64]float64{101: 1},
			},
			// пустая сторона: пара должна быть пропущена, а не дать нулевую кривую
			usdc: {Bids: map[float64]float64{100: 1}},
		},
		errs: map[domain.Market]error{eur: errors.New("HTTP 502")},
	}

	c := NewCEX(src, "rpl", []string{"usdt", "usdc", "eur"})
	got := c.GetLiquidity(context.Background())
	if len(got) != 1 {
		t.Fatalf("len=%d want=1", len(got))
	}
	curve, ok := got[usdt]
	if !ok {
		t.Fatalf("нет кривой для %s", usdt)
	}
	if curve.Price() != 100.5 {
		t.Fatalf("price=%.4f want=100.5", curve.Price())
	}

	flat := c.Liquidity(context.Background())
	if _, ok := flat["RPL/USDT"]; !ok || len(flat) != 1 {
		t.Fatalf("ключи=%v want=[RPL/USDT]", flat)
	}
}

type fakePool struct {
	label string
	curve depth.Curve
	err   error
}

func (p *fakePool) Label() string                                    { return p.label }
func (p *fakePool) Price(context.Context) (float64, error)           { return 1, nil }
func (p *fakePool) NormalizedPrice(context.Context) (float64, error) { return 1, nil }
func (p *fakePool) GetLiquidity(context.Context) (depth.Curve, error) {
	return p.curve, p.err
}

func TestDEXPartialFailure(t *testing.T) {
	good, err := depth.FromReserves(depth.Reserves{Balance0: 100, Balance1: 100})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	d := NewDEX("Balancer",
		&fakePool{label: "A", curve: good},
		&fakePool{label: "B", err: depth.ErrNoLiquidity},
	)
	got := d.Liquidity(context.Background())
	if len(got) != 1 {
		t.Fatalf("len=%d want=1", len(got))
	}
	if _, ok := got["A"]; !ok {
		t.Fatalf("нет кривой для пула A")
	}
}
