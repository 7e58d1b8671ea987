package webserver

import (
	"context"

	"depthbot/internal/app/venues"
	"depthbot/internal/infra/config"
	"depthbot/internal/infra/metrics"
	"depthbot/internal/transport/httpapi"
	"depthbot/internal/usecase/aggregate"
)

func New(ctx context.Context, cfg config.Config) *httpapi.Server {
	// Метрики процесса и запросов
	reg := metrics.Init()
	// Площадки из конфига
	vs := venues.Build(ctx, cfg)
	// Чистый use-case агрегации
	svc := aggregate.New(vs...)
	return httpapi.New(cfg.Server.Addr, svc, reg)
}
