package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Минимальные ABI: только view-функции, которые реально читаются.

var (
	ERC20ABI         = mustParse(erc20JSON)
	UniswapV3PoolABI = mustParse(uniswapV3PoolJSON)
	BalancerVaultABI = mustParse(balancerVaultJSON)
)

func mustParse(s string) *abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return &parsed
}

const erc20JSON = `[
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`

const uniswapV3PoolJSON = `[
  {"type":"function","name":"slot0","stateMutability":"view","inputs":[],"outputs":[
    {"name":"sqrtPriceX96","type":"uint160"},
    {"name":"tick","type":"int24"},
    {"name":"observationIndex","type":"uint16"},
    {"name":"observationCardinality","type":"uint16"},
    {"name":"observationCardinalityNext","type":"uint16"},
    {"name":"feeProtocol","type":"uint8"},
    {"name":"unlocked","type":"bool"}
  ]},
  {"type":"function","name":"liquidity","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint128"}]},
  {"type":"function","name":"tickSpacing","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"int24"}]},
  {"type":"function","name":"token0","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"token1","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"tickBitmap","stateMutability":"view","inputs":[{"name":"wordPosition","type":"int16"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"ticks","stateMutability":"view","inputs":[{"name":"tick","type":"int24"}],"outputs":[
    {"name":"liquidityGross","type":"uint128"},
    {"name":"liquidityNet","type":"int128"},
    {"name":"feeGrowthOutside0X128","type":"uint256"},
    {"name":"feeGrowthOutside1X128","type":"uint256"},
    {"name":"tickCumulativeOutside","type":"int56"},
    {"name":"secondsPerLiquidityOutsideX128","type":"uint160"},
    {"name":"secondsOutside","type":"uint32"},
    {"name":"initialized","type":"bool"}
  ]}
]`

const balancerVaultJSON = `[
  {"type":"function","name":"getPoolTokens","stateMutability":"view","inputs":[{"name":"poolId","type":"bytes32"}],"outputs":[
    {"name":"tokens","type":"address[]"},
    {"name":"balances","type":"uint256[]"},
    {"name":"lastChangeBlock","type":"uint256"}
  ]}
]`
