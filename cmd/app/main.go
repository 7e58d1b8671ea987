package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"depthbot/internal/app/venues"
	"depthbot/internal/infra/config"
	zlog "depthbot/internal/infra/log"
	"depthbot/internal/transport/cli"
	"depthbot/internal/usecase/aggregate"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "путь к yaml-конфигу")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}
	zlog.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	svc := aggregate.New(venues.Build(ctx, cfg)...)
	res := svc.Fetch(ctx)
	if len(res) == 0 {
		_, _ = fmt.Fprintln(os.Stderr, "Ни одна площадка не вернула ликвидность")
		os.Exit(1)
	}

	cli.NewCLIPresenter().ShowLiquidity(res)
}
