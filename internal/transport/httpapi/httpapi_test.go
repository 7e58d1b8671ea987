package httpapi

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"depthbot/internal/infra/metrics"
	"depthbot/internal/usecase/aggregate"
)

type fakeCurve struct {
	price float64
}

func (c fakeCurve) Price() float64            { return c.price }
func (c fakeCurve) DepthAt(t float64) float64 { return c.price * 10 }

type fakeFetcher struct {
	res aggregate.Result
}

func (f fakeFetcher) Fetch(ctx context.Context) aggregate.Result { return f.res }
func (f fakeFetcher) Names() []string {
	names := make([]string, 0, len(f.res))
	for n := range f.res {
		names = append(names, n)
	}
	return names
}

func newTestServer(res aggregate.Result) *Server {
	return New(":0", fakeFetcher{res: res}, metrics.Init())
}

func TestLiquidityBadPrice(t *testing.T) {
	srv := newTestServer(aggregate.Result{})
	h := srv.routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/liquidity?price=abc", nil))
	if rec.Code != 400 {
		t.Fatalf("ожидался 400 на нечисловой price, получен %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/liquidity?price=-1", nil))
	if rec.Code != 400 {
		t.Fatalf("ожидался 400 на отрицательный price, получен %d", rec.Code)
	}
}

func TestLiquidityDefaultsToMid(t *testing.T) {
	res := aggregate.Result{
		"Binance": {"RPL/USDT": fakeCurve{price: 5}},
	}
	srv := newTestServer(res)

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/liquidity", nil))
	if rec.Code != 200 {
		t.Fatalf("ожидался 200 без параметра price, получен %d", rec.Code)
	}
	var resp LiquidityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("некорректный JSON: %v", err)
	}
	if md := resp.Venues["Binance"]["RPL/USDT"]; md.Target != 5 {
		t.Fatalf("target по умолчанию должен равняться цене кривой: %+v", md)
	}
}

func TestLiquidityResponse(t *testing.T) {
	res := aggregate.Result{
		"Binance": {"RPL/USDT": fakeCurve{price: 5}},
	}
	srv := newTestServer(res)

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/liquidity?price=4.5", nil))
	if rec.Code != 200 {
		t.Fatalf("ожидался 200, получен %d: %s", rec.Code, rec.Body.String())
	}

	var resp LiquidityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("некорректный JSON: %v", err)
	}
	if resp.Target != 4.5 {
		t.Fatalf("target: ожидалось 4.5, получено %v", resp.Target)
	}
	md, ok := resp.Venues["Binance"]["RPL/USDT"]
	if !ok {
		t.Fatalf("нет рынка RPL/USDT в ответе: %+v", resp.Venues)
	}
	if md.Price != 5 || md.Depth != 50 {
		t.Fatalf("неожиданные значения: %+v", md)
	}
}

func TestLiquidityNoVenues(t *testing.T) {
	srv := newTestServer(aggregate.Result{})

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/liquidity?price=1", nil))
	if rec.Code != 502 {
		t.Fatalf("ожидался 502 при пустом результате, получен %d", rec.Code)
	}
}

func TestVenues(t *testing.T) {
	res := aggregate.Result{
		"Binance": {"RPL/USDT": fakeCurve{price: 5}},
		"OKX":     {"RPL/USDT": fakeCurve{price: 5}},
	}
	srv := newTestServer(res)

	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest("GET", "/api/venues", nil))
	if rec.Code != 200 {
		t.Fatalf("ожидался 200, получен %d", rec.Code)
	}
	var resp VenuesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("некорректный JSON: %v", err)
	}
	if len(resp.Venues) != 2 || resp.Venues[0] != "Binance" || resp.Venues[1] != "OKX" {
		t.Fatalf("ожидался отсортированный список площадок, получено %v", resp.Venues)
	}
}
