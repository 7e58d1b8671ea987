// Пакет venues собирает список площадок из конфига. Общая точка
// для CLI и веб-сервера.
package venues

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"depthbot/internal/adapters/chain"
	"depthbot/internal/adapters/dex/balancer"
	"depthbot/internal/adapters/dex/uniswapv3"
	binanceadapter "depthbot/internal/adapters/exchange/binance"
	bitgetadapter "depthbot/internal/adapters/exchange/bitget"
	bybitadapter "depthbot/internal/adapters/exchange/bybit"
	gateadapter "depthbot/internal/adapters/exchange/gate"
	htxadapter "depthbot/internal/adapters/exchange/htx"
	kucoinadapter "depthbot/internal/adapters/exchange/kucoin"
	okxadapter "depthbot/internal/adapters/exchange/okx"
	"depthbot/internal/domain"
	"depthbot/internal/infra/config"
	"depthbot/internal/usecase/venue"
)

// Build строит все площадки из конфига: семь бирж всегда, ончейн-пулы
// только при заданном RPC. Недоступный пул пропускается с предупреждением,
// остальные площадки продолжают работать.
func Build(ctx context.Context, cfg config.Config) []venue.Venue {
	bookCfg := domain.Config{
		Limit:   cfg.Books.Limit,
		DelayMS: cfg.Books.DelayMS,
	}

	sources := []domain.BookSource{
		binanceadapter.New(bookCfg),
		bybitadapter.New(bookCfg),
		okxadapter.New(bookCfg),
		kucoinadapter.New(bookCfg),
		bitgetadapter.New(bookCfg),
		htxadapter.New(bookCfg),
		gateadapter.New(bookCfg),
	}

	out := make([]venue.Venue, 0, len(sources)+2)
	for _, src := range sources {
		out = append(out, venue.NewCEX(src, cfg.Token.Major, cfg.Token.Minors))
	}

	if cfg.Chain.RPCURL == "" {
		log.Info().Msg("RPC не задан, ончейн-площадки отключены")
		return out
	}

	client, err := chain.Dial(ctx, cfg.Chain.RPCURL)
	if err != nil {
		log.Warn().Err(err).Msg("не удалось подключиться к RPC, ончейн-площадки отключены")
		return out
	}

	if pools := uniswapPools(ctx, client, cfg.Chain.UniswapPools); len(pools) > 0 {
		out = append(out, venue.NewDEX("Uniswap V3", pools...))
	}
	if pools := balancerPools(ctx, client, cfg); len(pools) > 0 {
		out = append(out, venue.NewDEX("Balancer", pools...))
	}
	return out
}

func uniswapPools(ctx context.Context, client *chain.Client, addrs []string) []venue.Pool {
	pools := make([]venue.Pool, 0, len(addrs))
	for _, a := range addrs {
		if !common.IsHexAddress(a) {
			log.Warn().Str("address", a).Msg("некорректный адрес пула Uniswap")
			continue
		}
		p, err := uniswapv3.NewPool(ctx, client, common.HexToAddress(a))
		if err != nil {
			log.Warn().Err(err).Str("address", a).Msg("пул Uniswap недоступен")
			continue
		}
		pools = append(pools, p)
	}
	return pools
}

func balancerPools(ctx context.Context, client *chain.Client, cfg config.Config) []venue.Pool {
	vault := common.HexToAddress(cfg.Chain.BalancerVault)
	pools := make([]venue.Pool, 0, len(cfg.Chain.BalancerPools))
	for _, id := range cfg.Chain.BalancerPools {
		p, err := balancer.NewWeightedPool(ctx, client, vault, id)
		if err != nil {
			log.Warn().Err(err).Str("pool_id", id).Msg("пул Balancer недоступен")
			continue
		}
		pools = append(pools, p)
	}
	return pools
}
