package depth

import "math"

// Reserves — снимок резервов двухтокенного пула с константным произведением.
// Балансы в сырых единицах токенов (как лежат в контракте).
type Reserves struct {
	Balance0  float64
	Balance1  float64
	Decimals0 int
	Decimals1 int
}

// ProductCurve — аналитическая кривая глубины пула x*y=k с равными весами.
// Решение точное, поиска нет.
type ProductCurve struct {
	price    float64
	balance0 float64
	balance1 float64
	norm     float64 // 10^(dec1-dec0), поправка на точность токенов
	unit0    float64 // 10^dec0
}

// FromReserves строит кривую по резервам. Пустой резерв — ErrNoLiquidity.
func FromReserves(r Reserves) (*ProductCurve, error) {
	if r.Balance0 == 0 || r.Balance1 == 0 {
		return nil, ErrNoLiquidity
	}
	norm := math.Pow(10, float64(r.Decimals1-r.Decimals0))
	return &ProductCurve{
		price:    norm * r.Balance0 / r.Balance1,
		balance0: r.Balance0,
		balance1: r.Balance1,
		norm:     norm,
		unit0:    math.Pow(10, float64(r.Decimals0)),
	}, nil
}

func (c *ProductCurve) Price() float64 { return c.price }

// DepthAt решает, каким должен стать баланс token0, чтобы предельная цена
// пула сравнялась с target, и возвращает модуль сдвига в человеческих
// единицах token0.
func (c *ProductCurve) DepthAt(target float64) float64 {
	invariant := c.balance0 * c.balance1
	newBalance0 := math.Sqrt(target * invariant / c.norm)
	return math.Abs(newBalance0-c.balance0) / c.unit0
}
