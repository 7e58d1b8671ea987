// Пакет chain — чтение контрактов через JSON-RPC узел.
// Помимо одиночных eth_call есть пакетное чтение: N независимых вызовов
// уходят одним раундтрипом, порядок результатов совпадает с порядком
// запросов. Для обхода тиков это принципиально — иначе стоимость запроса
// растёт линейно от числа тиков.
package chain

import (
	"context"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"

	"depthbot/internal/infra/metrics"
)

type Client struct {
	eth *ethclient.Client
	rpc *rpc.Client
}

func Dial(ctx context.Context, rawurl string) (*Client, error) {
	rc, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("chain: подключение к узлу: %w", err)
	}
	return &Client{eth: ethclient.NewClient(rc), rpc: rc}, nil
}

func (c *Client) Close() { c.rpc.Close() }

// Call — один запрос чтения контракта.
type Call struct {
	To     common.Address
	ABI    *abi.ABI
	Method string
	Args   []any
}

// Read выполняет одиночный eth_call и распаковывает результат.
func (c *Client) Read(ctx context.Context, call Call) ([]any, error) {
	data, err := call.ABI.Pack(call.Method, call.Args...)
	if err != nil {
		return nil, fmt.Errorf("chain: кодирование %s: %w", call.Method, err)
	}
	raw, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &call.To, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("chain: eth_call %s: %w", call.Method, err)
	}
	out, err := call.ABI.Unpack(call.Method, raw)
	if err != nil {
		return nil, fmt.Errorf("chain: декодирование %s: %w", call.Method, err)
	}
	return out, nil
}

// ReadBatch выполняет несколько независимых чтений одним раундтрипом.
func (c *Client) ReadBatch(ctx context.Context, calls []Call) ([][]any, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	batch := make([]rpc.BatchElem, len(calls))
	raws := make([]hexutil.Bytes, len(calls))
	for i, call := range calls {
		data, err := call.ABI.Pack(call.Method, call.Args...)
		if err != nil {
			return nil, fmt.Errorf("chain: кодирование %s: %w", call.Method, err)
		}
		batch[i] = rpc.BatchElem{
			Method: "eth_call",
			Args: []any{
				map[string]any{
					"to":   call.To,
					"data": hexutil.Bytes(data),
				},
				"latest",
			},
			Result: &raws[i],
		}
	}

	metrics.ChainBatchSize.Observe(float64(len(calls)))
	if err := c.rpc.BatchCallContext(ctx, batch); err != nil {
		return nil, fmt.Errorf("chain: пакетный eth_call: %w", err)
	}

	out := make([][]any, len(calls))
	for i, call := range calls {
		if batch[i].Error != nil {
			return nil, fmt.Errorf("chain: пакетный eth_call %s: %w", call.Method, batch[i].Error)
		}
		vals, err := call.ABI.Unpack(call.Method, raws[i])
		if err != nil {
			return nil, fmt.Errorf("chain: декодирование %s: %w", call.Method, err)
		}
		out[i] = vals
	}
	return out, nil
}

// BigToFloat переводит сырое значение контракта в float64.
// Балансы и ликвидность не влезают в int64, порядок величины сохраняется.
func BigToFloat(x *big.Int) float64 {
	return decimal.NewFromBigInt(x, 0).InexactFloat64()
}
