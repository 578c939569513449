package cmd_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crestswap/crest/cmd/crestcli/cmd"
	"github.com/crestswap/crest/types"
)

const testConfigYAML = `chain_id: 1
factory: "00112233445566778899aabbccddeeff00112233"
init_code_hash: "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
pools:
  ab:
    asset_a: tokena
    asset_b: tokenb
    reserve_a: "100000000000000000000"
    reserve_b: "100000000000000000000"
    curve: constant_product
    fee_bps: 30
  bc:
    asset_a: tokenb
    asset_b: tokenc
    reserve_a: "100000000000000000000"
    reserve_b: "100000000000000000000"
    fee_bps: 30
  xy:
    asset_a: tokenx
    asset_b: tokeny
    reserve_a: "98000000000000000000"
    reserve_b: "100000000000000000000"
    curve: boosted
    fee_bps: 30
    boost_low: 11
    boost_high: 28
    gate: sell_either
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// executeCommand runs crestcli with the given args and captures its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := cmd.NewRootCmd()
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	config, err := cmd.LoadConfig(path)
	require.NoError(t, err)
	require.EqualValues(t, 1, config.ChainID)
	require.Equal(t, "00112233445566778899aabbccddeeff00112233", hex.EncodeToString(config.Factory))
	require.EqualValues(t, 0x01, config.InitCodeHash[0])
	require.EqualValues(t, 0x20, config.InitCodeHash[31])
	require.Len(t, config.Pools, 3)

	ab, err := config.Pool("ab")
	require.NoError(t, err)
	require.Equal(t, types.CurveConstantProduct, ab.CurveMode())
	require.EqualValues(t, 30, ab.FeeBps())
	require.Equal(t, "100000000000000000000", ab.ReserveA().Amount.String())

	// Omitted keys fall back: plain curve, open gate.
	bc, err := config.Pool("bc")
	require.NoError(t, err)
	require.Equal(t, types.CurveConstantProduct, bc.CurveMode())
	require.Equal(t, types.SellEither, bc.TradeGate())

	xy, err := config.Pool("xy")
	require.NoError(t, err)
	require.Equal(t, types.CurveBoosted, xy.CurveMode())
	low, high := xy.Boosts()
	require.EqualValues(t, 11, low)
	require.EqualValues(t, 28, high)

	_, err = config.Pool("zz")
	require.Error(t, err)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, testConfigYAML)
	t.Setenv("CREST_CHAIN_ID", "9")

	config, err := cmd.LoadConfig(path)
	require.NoError(t, err)
	require.EqualValues(t, 9, config.ChainID)

	asset, err := config.Asset("ucrest")
	require.NoError(t, err)
	require.EqualValues(t, 9, asset.ChainID)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantMsg string
	}{
		{
			name:    "bad factory hex",
			yaml:    "chain_id: 1\nfactory: \"zz\"\n",
			wantMsg: "invalid factory",
		},
		{
			name:    "short factory",
			yaml:    "chain_id: 1\nfactory: \"0011\"\n",
			wantMsg: "factory must be 20 bytes",
		},
		{
			name:    "short init code hash",
			yaml:    "chain_id: 1\ninit_code_hash: \"0102\"\n",
			wantMsg: "init_code_hash must be 32 bytes",
		},
		{
			name:    "missing asset",
			yaml:    "chain_id: 1\npools:\n  bad:\n    asset_b: tokenb\n    reserve_a: \"1\"\n    reserve_b: \"1\"\n",
			wantMsg: "asset_a",
		},
		{
			name:    "bad reserve",
			yaml:    "chain_id: 1\npools:\n  bad:\n    asset_a: tokena\n    asset_b: tokenb\n    reserve_a: \"abc\"\n    reserve_b: \"1\"\n",
			wantMsg: "invalid reserve",
		},
		{
			name:    "bad curve",
			yaml:    "chain_id: 1\npools:\n  bad:\n    asset_a: tokena\n    asset_b: tokenb\n    reserve_a: \"1\"\n    reserve_b: \"1\"\n    curve: warp\n",
			wantMsg: "pool bad",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := cmd.LoadConfig(writeConfig(t, tc.yaml))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantMsg)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "read config")
	})
}

func TestQuoteOutCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "quote", "out", "ab", "tokena", "1000000000000000000")
	require.NoError(t, err)
	require.Contains(t, out, "amount in:  1000000000000000000tokena@1")
	require.Contains(t, out, "amount out: 987158034397061298tokenb@1")
	require.Contains(t, out, "fee:        30 bps")
	require.Contains(t, out, "reserves=(101000000000000000000,99012841965602938702)")
}

func TestQuoteOutBoostedCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "quote", "out", "xy", "tokenx", "10000000000000000000")
	require.NoError(t, err)
	require.Contains(t, out, "amount out: 9941982512178805534tokeny@1")
}

func TestQuoteInCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "quote", "in", "ab", "tokenb", "987158034397061298")
	require.NoError(t, err)
	require.Contains(t, out, "amount in:  1000000000000000000tokena@1")
	require.Contains(t, out, "amount out: 987158034397061298tokenb@1")
}

func TestQuoteCommandErrors(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	_, err := executeCommand(t, "--config", path, "quote", "out", "zz", "tokena", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "pool zz not in config")

	_, err = executeCommand(t, "--config", path, "quote", "out", "ab", "tokena", "not-a-number")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid amount")

	// tokenx is configured, just not in this pool.
	_, err = executeCommand(t, "--config", path, "quote", "out", "ab", "tokenx", "1")
	require.Error(t, err)
}

func TestPoolListCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "pool", "list")
	require.NoError(t, err)
	require.Contains(t, out, "ab")
	require.Contains(t, out, "xy")
	require.Less(t, strings.Index(out, "ab"), strings.Index(out, "bc"))
	require.Less(t, strings.Index(out, "bc"), strings.Index(out, "xy"))
}

func TestPoolShowCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "pool", "show", "xy")
	require.NoError(t, err)
	require.Contains(t, out, "pair:        tokenx@1 / tokeny@1")
	require.Contains(t, out, "curve:       boosted")
	require.Contains(t, out, "boosts:      low=11 high=28")
	require.Contains(t, out, "sqrt(k):")
	require.Contains(t, out, "fee:         30 bps")
	require.Contains(t, out, "share asset: amm/share/tokenx/tokeny@1")
	require.Contains(t, out, "spot tokenx->tokeny:")
}

func TestPoolAddressCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "pool", "address", "ab")
	require.NoError(t, err)
	require.Contains(t, out, "0xd7a097d317a3b931a62504c941c157591f481fb1")
}

func TestPoolAddressNoFactory(t *testing.T) {
	path := writeConfig(t, "chain_id: 1\npools:\n  ab:\n    asset_a: tokena\n    asset_b: tokenb\n    reserve_a: \"1\"\n    reserve_b: \"1\"\n")

	_, err := executeCommand(t, "--config", path, "pool", "address", "ab")
	require.Error(t, err)
	require.Contains(t, err.Error(), "factory not configured")
}

func TestRouteFindCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "route", "find", "tokena", "tokenc", "1000000000000000000")
	require.NoError(t, err)
	require.Contains(t, out, "hop 1: ab  1000000000000000000tokena@1 -> 987158034397061298tokenb@1")
	require.Contains(t, out, "hop 2: bc  987158034397061298tokenb@1 -> 974604535974342600tokenc@1")
	require.Contains(t, out, "amount out: 974604535974342600tokenc@1")
}

func TestRouteFindNoRoute(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	// tokenx only pairs with tokeny; nothing links it to the a-b-c cluster.
	_, err := executeCommand(t, "--config", path, "route", "find", "tokena", "tokenx", "1000000000000000000")
	require.Error(t, err)
}

func TestRouteAllCommand(t *testing.T) {
	path := writeConfig(t, testConfigYAML)

	out, err := executeCommand(t, "--config", path, "route", "all", "tokena", "tokenc")
	require.NoError(t, err)
	require.Contains(t, out, "route 1: ab -> bc")
	require.NotContains(t, out, "route 2")
}
