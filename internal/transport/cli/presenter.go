package cli

import (
	"fmt"
	"sort"

	"depthbot/internal/shared/format"
	"depthbot/internal/usecase/aggregate"
)

// Смещения от референсной цены, для которых печатается глубина.
var offsets = []float64{-0.10, -0.05, -0.02, 0.02, 0.05, 0.10}

type CLIPresenter struct{}

func NewCLIPresenter() *CLIPresenter { return &CLIPresenter{} }

func (c *CLIPresenter) Infof(format string, args ...any) { fmt.Printf(format, args...) }
func (c *CLIPresenter) Warnf(format string, args ...any) { fmt.Printf(format, args...) }

// ShowLiquidity печатает таблицу глубины по всем площадкам.
// Порядок площадок и рынков детерминированный.
func (c *CLIPresenter) ShowLiquidity(res aggregate.Result) {
	venues := make([]string, 0, len(res))
	for v := range res {
		venues = append(venues, v)
	}
	sort.Strings(venues)

	for _, v := range venues {
		curves := res[v]
		keys := make([]string, 0, len(curves))
		for k := range curves {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Printf("\n=== %s ===\n", v)
		for _, k := range keys {
			curve := curves[k]
			price := curve.Price()
			fmt.Printf("%s: цена %s\n", k, format.FloatRU(price))
			for _, off := range offsets {
				target := price * (1 + off)
				fmt.Printf("  %s: глубина %s\n", format.Pct(off), format.FloatRU(curve.DepthAt(target)))
			}
		}
	}
}
