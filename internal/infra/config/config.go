package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Books struct {
		Limit   int `yaml:"limit"`
		DelayMS int `yaml:"delay_ms"`
	} `yaml:"books"`
	Token struct {
		Major  string   `yaml:"major"`
		Minors []string `yaml:"minors"`
	} `yaml:"token"`
	Chain struct {
		// RPCURL перекрывается переменной окружения ETH_RPC_URL
		RPCURL        string   `yaml:"rpc_url"`
		BalancerVault string   `yaml:"balancer_vault"`
		UniswapPools  []string `yaml:"uniswap_pools"`
		BalancerPools []string `yaml:"balancer_pools"`
	} `yaml:"chain"`
}

func Default() Config {
	var c Config
	c.Logging.Level = "info"
	c.Logging.Pretty = true
	c.Server.Addr = ":8080"
	c.Books.Limit = 500
	c.Books.DelayMS = 100
	c.Token.Major = "RPL"
	c.Token.Minors = []string{"USDT", "USDC"}
	// Balancer V2 Vault в mainnet
	c.Chain.BalancerVault = "0xBA12222222228d8Ba445958a75a0704d566BF2C8"
	return c
}

// Load читает yaml-конфиг. Отсутствующий файл — не ошибка: берутся значения
// по умолчанию, чтобы CLI работал без настройки.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return cfg, fmt.Errorf("config: чтение %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: разбор %s: %w", path, err)
		}
	}

	if v := os.Getenv("ETH_RPC_URL"); v != "" {
		cfg.Chain.RPCURL = v
	}
	return cfg, nil
}
