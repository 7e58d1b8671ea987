// Пакет uniswapv3 — пул с концентрированной ликвидностью.
// Глубина восстанавливается из битовой карты тиков: сканируется окно в
// десять слов вокруг текущего тика, найденные тики дочитываются одним
// пакетом. Пул, у которого ближайшая ликвидность лежит за пределами окна,
// занижает глубину вдали от цены — известное ограничение, принятое ради
// фиксированного числа раундтрипов.
package uniswapv3

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"depthbot/internal/adapters/chain"
	"depthbot/internal/usecase/depth"
)

const scanWindow = 5 // слов битовой карты в каждую сторону от текущего

type Pool struct {
	client  *chain.Client
	address common.Address
	spacing int
	token0  *chain.Token
	token1  *chain.Token
}

// NewPool читает неизменяемые параметры пула: шаг тиков и метаданные токенов.
func NewPool(ctx context.Context, client *chain.Client, address common.Address) (*Pool, error) {
	res, err := client.ReadBatch(ctx, []chain.Call{
		{To: address, ABI: chain.UniswapV3PoolABI, Method: "tickSpacing"},
		{To: address, ABI: chain.UniswapV3PoolABI, Method: "token0"},
		{To: address, ABI: chain.UniswapV3PoolABI, Method: "token1"},
	})
	if err != nil {
		return nil, fmt.Errorf("uniswapv3 %s: %w", address.Hex(), err)
	}
	spacing, ok := res[0][0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("uniswapv3 %s: неожиданный тип tickSpacing %T", address.Hex(), res[0][0])
	}

	p := &Pool{client: client, address: address, spacing: int(spacing.Int64())}
	if p.token0, err = chain.NewToken(ctx, client, res[1][0].(common.Address)); err != nil {
		return nil, err
	}
	if p.token1, err = chain.NewToken(ctx, client, res[2][0].(common.Address)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pool) Label() string {
	return fmt.Sprintf("Uniswap %s/%s %s", p.token0.Symbol, p.token1.Symbol, p.address.Hex()[:10])
}

// Price — сырое отношение token1/token0 из slot0: (sqrtPriceX96)^2 / 2^192.
func (p *Pool) Price(ctx context.Context) (float64, error) {
	res, err := p.client.Read(ctx, chain.Call{To: p.address, ABI: chain.UniswapV3PoolABI, Method: "slot0"})
	if err != nil {
		return 0, err
	}
	sqrt96, ok := res[0].(*big.Int)
	if !ok {
		return 0, fmt.Errorf("uniswapv3 %s: неожиданный тип sqrtPriceX96 %T", p.address.Hex(), res[0])
	}
	num := new(big.Float).SetInt(new(big.Int).Mul(sqrt96, sqrt96))
	den := new(big.Float).SetInt(new(big.Int).Lsh(big.NewInt(1), 192))
	price, _ := new(big.Float).Quo(num, den).Float64()
	return price, nil
}

func (p *Pool) NormalizedPrice(ctx context.Context) (float64, error) {
	price, err := p.Price(ctx)
	if err != nil {
		return 0, err
	}
	return price * math.Pow(10, float64(p.token0.Decimals-p.token1.Decimals)), nil
}

// initializedTicks сканирует окно битовой карты вокруг текущего тика.
// Десять слов читаются одним пакетом; каждый взведённый бит — один
// инициализированный тик. Результат отсортирован по возрастанию.
func (p *Pool) initializedTicks(ctx context.Context, currentTick int) ([]int, error) {
	activeWord, _ := depth.TickWordBit(currentTick, p.spacing)

	words := make([]int, 0, 2*scanWindow)
	calls := make([]chain.Call, 0, 2*scanWindow)
	for w := activeWord - scanWindow; w < activeWord+scanWindow; w++ {
		words = append(words, w)
		calls = append(calls, chain.Call{
			To:     p.address,
			ABI:    chain.UniswapV3PoolABI,
			Method: "tickBitmap",
			Args:   []any{int16(w)},
		})
	}
	res, err := p.client.ReadBatch(ctx, calls)
	if err != nil {
		return nil, err
	}

	var ticks []int
	for i, w := range words {
		bitmap, ok := res[i][0].(*big.Int)
		if !ok || bitmap.Sign() == 0 {
			continue
		}
		for b := 0; b < depth.TickWordSize; b++ {
			if bitmap.Bit(b) == 1 {
				ticks = append(ticks, (w*depth.TickWordSize+b)*p.spacing)
			}
		}
	}
	return ticks, nil
}

// netLiquidity пакетно читает дельту ликвидности каждого тика.
func (p *Pool) netLiquidity(ctx context.Context, ticks []int) (map[int]float64, error) {
	calls := make([]chain.Call, len(ticks))
	for i, t := range ticks {
		calls[i] = chain.Call{
			To:     p.address,
			ABI:    chain.UniswapV3PoolABI,
			Method: "ticks",
			Args:   []any{big.NewInt(int64(t))},
		}
	}
	res, err := p.client.ReadBatch(ctx, calls)
	if err != nil {
		return nil, err
	}

	out := make(map[int]float64, len(ticks))
	for i, t := range ticks {
		net, ok := res[i][1].(*big.Int)
		if !ok {
			return nil, fmt.Errorf("uniswapv3 %s: неожиданный тип liquidityNet %T", p.address.Hex(), res[i][1])
		}
		out[t] = chain.BigToFloat(net)
	}
	return out, nil
}

// GetLiquidity собирает снимок состояния пула и строит кривую глубины.
// После сборки снимка никаких чтений не происходит.
func (p *Pool) GetLiquidity(ctx context.Context) (depth.Curve, error) {
	price, err := p.Price(ctx)
	if err != nil {
		return nil, err
	}
	res, err := p.client.Read(ctx, chain.Call{To: p.address, ABI: chain.UniswapV3PoolABI, Method: "liquidity"})
	if err != nil {
		return nil, err
	}
	active, ok := res[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("uniswapv3 %s: неожиданный тип liquidity %T", p.address.Hex(), res[0])
	}

	currentTick := int(math.Floor(depth.PriceToTick(price)))
	ticks, err := p.initializedTicks(ctx, currentTick)
	if err != nil {
		return nil, err
	}
	if len(ticks) == 0 {
		return nil, depth.ErrNoLiquidity
	}
	net, err := p.netLiquidity(ctx, ticks)
	if err != nil {
		return nil, err
	}

	return depth.FromTicks(depth.TickSnapshot{
		Price:        price,
		Liquidity:    chain.BigToFloat(active),
		Ticks:        ticks,
		NetLiquidity: net,
		Decimals0:    p.token0.Decimals,
		Decimals1:    p.token1.Decimals,
	})
}
