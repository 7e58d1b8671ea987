// Пакет venue сводит разные источники ликвидности к одному контракту:
// площадка отдаёт отображение пара/пул -> кривая глубины. Пары и пулы с
// пустым или недоступным состоянием молча пропускаются — шумный источник
// уменьшает покрытие, но не валит запрос.
package venue

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"depthbot/internal/domain"
	"depthbot/internal/usecase/depth"
)

// Venue — единый контракт площадки, CEX или DEX.
// Ключи результата: "MAJOR/MINOR" для пар, метка пула для DEX.
type Venue interface {
	Name() string
	Liquidity(ctx context.Context) map[string]depth.Curve
}

// CEX оборачивает адаптер биржи и набор торговых пар.
type CEX struct {
	src     domain.BookSource
	markets []domain.Market
}

func NewCEX(src domain.BookSource, major string, minors []string) *CEX {
	markets := make([]domain.Market, 0, len(minors))
	for _, minor := range minors {
		markets = append(markets, domain.Market{
			Major: strings.ToUpper(major),
			Minor: strings.ToUpper(minor),
		})
	}
	return &CEX{src: src, markets: markets}
}

func (c *CEX) Name() string { return c.src.Name() }

func (c *CEX) Markets() []domain.Market { return c.markets }

// GetLiquidity строит кривую глубины по каждой паре.
// Отказ одной пары не мешает остальным.
func (c *CEX) GetLiquidity(ctx context.Context) map[domain.Market]depth.Curve {
	out := make(map[domain.Market]depth.Curve, len(c.markets))
	for _, m := range c.markets {
		ob, err := c.src.FetchOrderBook(ctx, m)
		if err != nil {
			log.Warn().Str("venue", c.Name()).Stringer("market", m).Err(err).
				Msg("стакан недоступен, пара пропущена")
			continue
		}
		curve, err := depth.FromOrderBook(ob)
		if err != nil {
			log.Warn().Str("venue", c.Name()).Stringer("market", m).
				Msg("пустой стакан, пара пропущена")
			continue
		}
		out[m] = curve
	}
	return out
}

func (c *CEX) Liquidity(ctx context.Context) map[string]depth.Curve {
	out := make(map[string]depth.Curve, len(c.markets))
	for m, curve := range c.GetLiquidity(ctx) {
		out[m.String()] = curve
	}
	return out
}

// Pool — контракт пула DEX: цены и кривая глубины.
// Пул не хранит состояние между вызовами, каждый запрос читает цепочку заново.
type Pool interface {
	Label() string
	Price(ctx context.Context) (float64, error)
	NormalizedPrice(ctx context.Context) (float64, error)
	GetLiquidity(ctx context.Context) (depth.Curve, error)
}

// DEX оборачивает набор пулов одного протокола.
type DEX struct {
	name  string
	pools []Pool
}

func NewDEX(name string, pools ...Pool) *DEX {
	return &DEX{name: name, pools: pools}
}

func (d *DEX) Name() string { return d.name }

func (d *DEX) Pools() []Pool { return d.pools }

func (d *DEX) Liquidity(ctx context.Context) map[string]depth.Curve {
	out := make(map[string]depth.Curve, len(d.pools))
	for _, p := range d.pools {
		curve, err := p.GetLiquidity(ctx)
		if err != nil {
			log.Warn().Str("venue", d.name).Str("pool", p.Label()).Err(err).
				Msg("пул пропущен")
			continue
		}
		out[p.Label()] = curve
	}
	return out
}
