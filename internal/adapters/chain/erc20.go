package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Token — метаданные ERC20. Символ и точность читаются один раз при
// создании пула и дальше не меняются.
type Token struct {
	Address  common.Address
	Symbol   string
	Decimals int
}

func NewToken(ctx context.Context, c *Client, addr common.Address) (*Token, error) {
	res, err := c.ReadBatch(ctx, []Call{
		{To: addr, ABI: ERC20ABI, Method: "symbol"},
		{To: addr, ABI: ERC20ABI, Method: "decimals"},
	})
	if err != nil {
		return nil, fmt.Errorf("erc20 %s: %w", addr.Hex(), err)
	}
	symbol, ok := res[0][0].(string)
	if !ok {
		return nil, fmt.Errorf("erc20 %s: неожиданный тип symbol %T", addr.Hex(), res[0][0])
	}
	decimals, ok := res[1][0].(uint8)
	if !ok {
		return nil, fmt.Errorf("erc20 %s: неожиданный тип decimals %T", addr.Hex(), res[1][0])
	}
	return &Token{Address: addr, Symbol: symbol, Decimals: int(decimals)}, nil
}

func (t *Token) String() string { return t.Symbol }

// HumanAmount переводит сырое количество токена в человеческие единицы.
func (t *Token) HumanAmount(raw *big.Int) float64 {
	return decimal.NewFromBigInt(raw, -int32(t.Decimals)).InexactFloat64()
}
