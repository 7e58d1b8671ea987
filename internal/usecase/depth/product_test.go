package depth

import (
	"math"
	"testing"
)

func TestFromReservesExact(t *testing.T) {
	c, err := FromReserves(Reserves{Balance0: 100, Balance1: 100})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if c.Price() != 1 {
		t.Fatalf("price=%.8f want=1", c.Price())
	}
	// на текущей цене сдвига нет
	if got := c.DepthAt(1); got != 0 {
		t.Fatalf("DepthAt(price)=%.8f want=0", got)
	}

	// цена x4: новый баланс должен удовлетворять инварианту x*y=k
	depth := c.DepthAt(4)
	newBalance0 := 100 + depth
	newBalance1 := 100.0 * 100.0 / newBalance0
	if math.Abs(newBalance0*newBalance1-100*100) > 1e-6 {
		t.Fatalf("инвариант нарушен: %.8f", newBalance0*newBalance1)
	}
	if math.Abs(depth-100) > 1e-9 {
		t.Fatalf("depth=%.8f want=100", depth)
	}
}

func TestFromReservesDecimals(t *testing.T) {
	// те же 100/100 в человеческих единицах, но token0 с двумя знаками
	c, err := FromReserves(Reserves{Balance0: 10000, Balance1: 100, Decimals0: 2, Decimals1: 0})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if math.Abs(c.Price()-1) > 1e-12 {
		t.Fatalf("price=%.8f want=1", c.Price())
	}
	// глубина в человеческих единицах не зависит от точности токена
	if got := c.DepthAt(4); math.Abs(got-100) > 1e-9 {
		t.Fatalf("DepthAt(4)=%.8f want=100", got)
	}
}

func TestFromReservesEmpty(t *testing.T) {
	if _, err := FromReserves(Reserves{Balance0: 0, Balance1: 100}); err != ErrNoLiquidity {
		t.Fatalf("err=%v want=ErrNoLiquidity", err)
	}
	if _, err := FromReserves(Reserves{Balance0: 100, Balance1: 0}); err != ErrNoLiquidity {
		t.Fatalf("err=%v want=ErrNoLiquidity", err)
	}
}
