package aggregate

import (
	"context"
	"testing"

	"depthbot/internal/usecase/depth"
)

type fakeVenue struct {
	name   string
	curves map[string]depth.Curve
}

func (v *fakeVenue) Name() string { return v.name }

func (v *fakeVenue) Liquidity(context.Context) map[string]depth.Curve { return v.curves }

func TestFetchPartialResults(t *testing.T) {
	curve, err := depth.FromReserves(depth.Reserves{Balance0: 100, Balance1: 100})
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	svc := New(
		&fakeVenue{name: "Good", curves: map[string]depth.Curve{"RPL/USDT": curve}},
		&fakeVenue{name: "Empty"},
	)
	got := svc.Fetch(context.Background())
	if len(got) != 1 {
		t.Fatalf("len=%d want=1", len(got))
	}
	if _, ok := got["Good"]["RPL/USDT"]; !ok {
		t.Fatalf("нет результата площадки Good: %v", got)
	}
	if _, ok := got["Empty"]; ok {
		t.Fatalf("пустая площадка не должна попадать в результат")
	}
}

func TestFetchConcurrent(t *testing.T) {
	curve, err := depth.FromReserves(depth.Reserves{Balance0: 100, Balance1: 100})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	var venues []*fakeVenue
	svc := &Service{}
	for _, name := range []string{"A", "B", "C", "D", "E"} {
		v := &fakeVenue{name: name, curves: map[string]depth.Curve{name: curve}}
		venues = append(venues, v)
		svc.venues = append(svc.venues, v)
	}
	got := svc.Fetch(context.Background())
	if len(got) != len(venues) {
		t.Fatalf("len=%d want=%d", len(got), len(venues))
	}
}
