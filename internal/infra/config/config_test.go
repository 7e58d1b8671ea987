package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr=%q want=:8080", cfg.Server.Addr)
	}
	if cfg.Token.Major != "RPL" || cfg.Books.Limit != 500 {
		t.Fatalf("неожиданные значения по умолчанию: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	raw := `
logging:
  level: debug
  pretty: false
server:
  addr: ":9090"
token:
  major: ETH
  minors: [USDT]
chain:
  rpc_url: "http://localhost:8545"
  uniswap_pools: ["0x0000000000000000000000000000000000000001"]
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("err=%v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Logging.Level != "debug" || cfg.Server.Addr != ":9090" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Token.Major != "ETH" || len(cfg.Token.Minors) != 1 {
		t.Fatalf("token=%+v", cfg.Token)
	}
	if len(cfg.Chain.UniswapPools) != 1 {
		t.Fatalf("chain=%+v", cfg.Chain)
	}
	// незаполненные поля сохраняют значения по умолчанию
	if cfg.Chain.BalancerVault == "" {
		t.Fatalf("balancer_vault не должен обнуляться")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ETH_RPC_URL", "http://env:8545")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.Chain.RPCURL != "http://env:8545" {
		t.Fatalf("rpc_url=%q", cfg.Chain.RPCURL)
	}
}
