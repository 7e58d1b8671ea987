// Пакет balancer — двухтокенный weighted-пул Balancer V2.
// Веса считаются равными, глубина выводится аналитически из инварианта
// константного произведения. Другие типы пулов пока не поддержаны.
package balancer

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"

	"depthbot/internal/adapters/chain"
	"depthbot/internal/usecase/depth"
)

type WeightedPool struct {
	client *chain.Client
	vault  common.Address
	id     [32]byte
	token0 *chain.Token
	token1 *chain.Token
}

// NewWeightedPool резолвит пул по его id в Vault и читает метаданные токенов.
func NewWeightedPool(ctx context.Context, client *chain.Client, vault common.Address, poolID string) (*WeightedPool, error) {
	raw, err := hexutil.Decode(poolID)
	if err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("balancer: некорректный pool id %q", poolID)
	}
	p := &WeightedPool{client: client, vault: vault}
	copy(p.id[:], raw)

	tokens, _, err := p.poolTokens(ctx)
	if err != nil {
		return nil, err
	}
	if len(tokens) < 2 {
		return nil, fmt.Errorf("balancer: пул %s: ожидались два токена, получено %d", poolID, len(tokens))
	}
	if p.token0, err = chain.NewToken(ctx, client, tokens[0]); err != nil {
		return nil, err
	}
	if p.token1, err = chain.NewToken(ctx, client, tokens[1]); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *WeightedPool) poolTokens(ctx context.Context) ([]common.Address, []*big.Int, error) {
	res, err := p.client.Read(ctx, chain.Call{
		To:     p.vault,
		ABI:    chain.BalancerVaultABI,
		Method: "getPoolTokens",
		Args:   []any{p.id},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("balancer: getPoolTokens: %w", err)
	}
	tokens, ok := res[0].([]common.Address)
	if !ok {
		return nil, nil, fmt.Errorf("balancer: неожиданный тип tokens %T", res[0])
	}
	balances, ok := res[1].([]*big.Int)
	if !ok {
		return nil, nil, fmt.Errorf("balancer: неожиданный тип balances %T", res[1])
	}
	return tokens, balances, nil
}

func (p *WeightedPool) Label() string {
	return fmt.Sprintf("Balancer %s/%s", p.token0.Symbol, p.token1.Symbol)
}

// Price — сырое отношение резервов token1/token0.
func (p *WeightedPool) Price(ctx context.Context) (float64, error) {
	_, balances, err := p.poolTokens(ctx)
	if err != nil {
		return 0, err
	}
	if balances[0].Sign() == 0 {
		return 0, nil
	}
	return chain.BigToFloat(balances[1]) / chain.BigToFloat(balances[0]), nil
}

func (p *WeightedPool) NormalizedPrice(ctx context.Context) (float64, error) {
	price, err := p.Price(ctx)
	if err != nil {
		return 0, err
	}
	return price * math.Pow(10, float64(p.token0.Decimals-p.token1.Decimals)), nil
}

// GetLiquidity перечитывает резервы и строит кривую глубины.
func (p *WeightedPool) GetLiquidity(ctx context.Context) (depth.Curve, error) {
	_, balances, err := p.poolTokens(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("pool", p.Label()).
		Float64(p.token0.Symbol, p.token0.HumanAmount(balances[0])).
		Float64(p.token1.Symbol, p.token1.HumanAmount(balances[1])).
		Msg("резервы пула")

	return depth.FromReserves(depth.Reserves{
		Balance0:  chain.BigToFloat(balances[0]),
		Balance1:  chain.BigToFloat(balances[1]),
		Decimals0: p.token0.Decimals,
		Decimals1: p.token1.Decimals,
	})
}
