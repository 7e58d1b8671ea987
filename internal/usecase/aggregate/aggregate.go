// Пакет aggregate параллельно опрашивает все настроенные площадки и сводит
// их кривые глубины в один результат. Частичный результат всегда лучше
// полного отказа.
package aggregate

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"depthbot/internal/infra/metrics"
	"depthbot/internal/usecase/depth"
	"depthbot/internal/usecase/venue"
)

// Result — площадка -> ключ (пара или пул) -> кривая глубины.
type Result map[string]map[string]depth.Curve

type Service struct {
	venues []venue.Venue
}

func New(venues ...venue.Venue) *Service { return &Service{venues: venues} }

func (s *Service) Venues() []venue.Venue { return s.venues }

// Names возвращает имена настроенных площадок.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.venues))
	for _, v := range s.venues {
		names = append(names, v.Name())
	}
	return names
}

// Fetch опрашивает площадки параллельно: каждая независима, общего
// изменяемого состояния нет. Площадка без результата просто отсутствует
// в итоговой карте.
func (s *Service) Fetch(ctx context.Context) Result {
	type res struct {
		name   string
		curves map[string]depth.Curve
	}
	ch := make(chan res, len(s.venues))

	for _, v := range s.venues {
		go func(v venue.Venue) {
			start := time.Now()
			curves := v.Liquidity(ctx)
			metrics.FetchDuration.Observe(time.Since(start).Seconds())
			metrics.FetchTotal.WithLabelValues(v.Name()).Inc()
			ch <- res{name: v.Name(), curves: curves}
		}(v)
	}

	out := make(Result, len(s.venues))
	for range s.venues {
		r := <-ch
		if len(r.curves) == 0 {
			metrics.FetchEmptyTotal.WithLabelValues(r.name).Inc()
			log.Warn().Str("venue", r.name).Msg("площадка не вернула ликвидность")
			continue
		}
		out[r.name] = r.curves
	}
	return out
}
