package depth

import (
	"math"
	"sort"
)

// Тик — дискретная координата цены в concentrated-liquidity AMM:
// цена = 1.0001^тик. Тики группируются в слова битовой карты по 256 штук.
const (
	TickWordSize = 256
	MinTick      = -887272
	MaxTick      = 887272
)

func TickToPrice(tick float64) float64 { return math.Pow(1.0001, tick) }

func PriceToTick(price float64) float64 { return math.Log(price) / math.Log(1.0001) }

// TickWordBit — координата (слово, бит) тика в битовой карте.
// Сжатие делит на шаг тиков с округлением к минус бесконечности:
// отрицательные тики, не кратные шагу, уходят на слово ниже.
func TickWordBit(tick, spacing int) (word, bit int) {
	compressed := tick / spacing
	if tick < 0 && tick%spacing != 0 {
		compressed--
	}

	word = compressed / TickWordSize
	if compressed < 0 && compressed%TickWordSize != 0 {
		word--
	}
	bit = compressed - word*TickWordSize
	return word, bit
}

// TickSnapshot — уже прочитанное состояние пула: текущая цена, активная
// ликвидность и найденные в окне битовой карты инициализированные тики с
// дельтами ликвидности. Дальше никаких чтений не происходит.
type TickSnapshot struct {
	Price        float64 // сырое отношение token1/token0
	Liquidity    float64 // активная ликвидность текущего диапазона
	Ticks        []int   // инициализированные тики по возрастанию
	NetLiquidity map[int]float64
	Decimals0    int
	Decimals1    int
}

// TickCurve — кривая глубины concentrated-liquidity пула: границы тиков и
// кумулятивный объём token0 по каждому направлению от текущей цены.
type TickCurve struct {
	price      float64
	calculated float64 // текущий тик до округления
	norm       float64 // 10^(dec1-dec0)

	askTicks []float64 // по убыванию, замыкается MinTick
	askDepth []float64
	bidTicks []float64 // по возрастанию, замыкается MaxTick
	bidDepth []float64
}

// FromTicks строит кривую по снимку. Если в отсканированном окне не нашлось
// ни одного инициализированного тика — ErrNoLiquidity, а не догадки.
func FromTicks(s TickSnapshot) (*TickCurve, error) {
	if len(s.Ticks) == 0 {
		return nil, ErrNoLiquidity
	}

	calculated := PriceToTick(s.Price)
	current := int(math.Floor(calculated))

	// тики по обе стороны от текущего; страховочная граница гарантирует,
	// что обходу всегда есть где остановиться
	var askTicks, bidTicks []int
	for i := len(s.Ticks) - 1; i >= 0; i-- {
		if s.Ticks[i] <= current {
			askTicks = append(askTicks, s.Ticks[i])
		}
	}
	askTicks = append(askTicks, MinTick)
	for _, t := range s.Ticks {
		if t > current {
			bidTicks = append(bidTicks, t)
		}
	}
	bidTicks = append(bidTicks, MaxTick)

	c := &TickCurve{
		calculated: calculated,
		norm:       math.Pow(10, float64(s.Decimals1-s.Decimals0)),
	}
	c.price = c.norm / s.Price
	c.askTicks, c.askDepth = cumulativeDepth(s, calculated, askTicks)
	c.bidTicks, c.bidDepth = cumulativeDepth(s, calculated, bidTicks)
	return c, nil
}

// cumulativeDepth идёт по тикам наружу от текущей цены, переводя ликвидность
// каждого пересечённого диапазона в объём token0. Вверх дельта тика
// прибавляется, вниз — вычитается: спуск снимает ликвидность, добавленную
// этим тиком на подъёме.
func cumulativeDepth(s TickSnapshot, calculated float64, ticks []int) (bounds, depths []float64) {
	bounds = make([]float64, 1, len(ticks)+1)
	depths = make([]float64, 1, len(ticks)+1)
	bounds[0] = calculated

	last := calculated
	active := s.Liquidity
	unit0 := math.Pow(10, float64(s.Decimals0))

	var cum float64
	for _, tick := range ticks {
		t := float64(tick)
		var dx float64
		if t > last {
			dx = rangeToken0(active, last, t)
			active += s.NetLiquidity[tick]
		} else {
			dx = rangeToken0(active, t, last)
			active -= s.NetLiquidity[tick]
		}
		cum += dx / unit0
		bounds = append(bounds, t)
		depths = append(depths, cum)
		last = t
	}
	return bounds, depths
}

// rangeToken0 — объём token0 в диапазоне [lower, upper] при ликвидности L:
// Δx = (1/√p_lower − 1/√p_upper) * L.
func rangeToken0(liquidity, lower, upper float64) float64 {
	sqrtLower := math.Sqrt(TickToPrice(lower))
	sqrtUpper := math.Sqrt(TickToPrice(upper))
	return (1/sqrtLower - 1/sqrtUpper) * liquidity
}

func (c *TickCurve) Price() float64 { return c.price }

// DepthAt переводит целевую цену в тик и интерполирует кумулятивный объём
// между двумя соседними границами. Линейная интерполяция по тику допустима:
// цена и так экспоненциальна по тику. За пределами отсканированного окна
// глубина насыщается последним известным значением.
func (c *TickCurve) DepthAt(target float64) float64 {
	var tick float64
	if target <= 0 {
		tick = MaxTick
	} else {
		tick = -PriceToTick(target / c.norm)
	}

	var bounds, depths []float64
	var i int
	if tick <= c.calculated {
		bounds, depths = c.askTicks, c.askDepth
		i = sort.Search(len(bounds), func(k int) bool { return bounds[k] < tick })
	} else {
		bounds, depths = c.bidTicks, c.bidDepth
		i = sort.Search(len(bounds), func(k int) bool { return bounds[k] > tick })
	}
	if i >= len(depths) {
		return depths[len(depths)-1]
	}

	share := math.Abs(tick-bounds[i-1]) / math.Abs(bounds[i]-bounds[i-1])
	return depths[i-1] + share*math.Abs(depths[i]-depths[i-1])
}
