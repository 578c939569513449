package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crestswap/crest/pairaddr"
	"github.com/crestswap/crest/pricing"
	"github.com/crestswap/crest/types"
)

const (
	// EnvPrefix scopes environment overrides: CREST_FACTORY overrides the
	// factory key, CREST_CHAIN_ID the chain id, and so on.
	EnvPrefix = "CREST"

	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagMetricsAddr = "metrics-addr"
	flagMaxHops     = "max-hops"
)

// contextKey indexes the CLI context inside cobra's command context.
type contextKey struct{}

// cliContext carries what every subcommand needs: the loaded pool universe,
// a configured logger, and the pair address cache.
type cliContext struct {
	logger log.Logger
	config *Config
	cache  *pairaddr.Cache
}

// getCLIContext retrieves the context installed by the root command's
// PersistentPreRunE.
func getCLIContext(cmd *cobra.Command) (*cliContext, error) {
	cliCtx, ok := cmd.Context().Value(contextKey{}).(*cliContext)
	if !ok {
		return nil, fmt.Errorf("command context not initialized")
	}
	return cliCtx, nil
}

// NewRootCmd creates the crestcli root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crestcli",
		Short: "Price trades against configured AMM pools",
		Long: `crestcli prices swaps, derives pair addresses, and finds trade routes
over a set of liquidity pools loaded from a YAML config.

Every command is a pure calculation against the configured snapshot; nothing
is submitted or executed anywhere.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagConfig, "", "config file (default $HOME/.crest/pools.yaml)")
	rootCmd.PersistentFlags().String(flagLogLevel, "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String(flagMetricsAddr, "", "serve Prometheus metrics on this address (e.g. localhost:36660)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		levelStr, err := cmd.Flags().GetString(flagLogLevel)
		if err != nil {
			return err
		}
		filter, err := log.ParseLogLevel(levelStr)
		if err != nil {
			return fmt.Errorf("invalid log level %s: %w", levelStr, err)
		}
		logger := log.NewLogger(cmd.ErrOrStderr(), log.FilterOption(filter))

		configPath, err := cmd.Flags().GetString(flagConfig)
		if err != nil {
			return err
		}
		config, err := LoadConfig(configPath)
		if err != nil {
			return err
		}
		logger.Debug("config loaded", "pools", len(config.Pools), "chain_id", config.ChainID)

		metricsAddr, err := cmd.Flags().GetString(flagMetricsAddr)
		if err != nil {
			return err
		}
		if metricsAddr != "" {
			startMetricsServer(logger, metricsAddr)
		}

		cliCtx := &cliContext{
			logger: logger,
			config: config,
			cache:  pairaddr.NewCache(),
		}
		cmd.SetContext(context.WithValue(cmd.Context(), contextKey{}, cliCtx))
		return nil
	}

	rootCmd.AddCommand(
		GetQuoteCmd(),
		GetPoolCmd(),
		GetRouteCmd(),
	)

	return rootCmd
}

// startMetricsServer exposes the router and pair address cache metrics via
// promhttp. It runs in a background goroutine; errors after startup (like
// the port being in use) are logged but not fatal.
func startMetricsServer(logger log.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server stopped", "err", err)
		}
	}()
}

// Config is the pool universe a crestcli invocation works against, plus the
// deployment parameters used for pair address derivation. Pool names come
// from the YAML keys and are matched lowercase.
type Config struct {
	ChainID      uint32
	Factory      []byte
	InitCodeHash [32]byte
	Pools        map[string]pricing.Pool
}

// Asset resolves a denom against the configured chain.
func (c *Config) Asset(denom string) (types.Asset, error) {
	return types.NewAsset(c.ChainID, denom)
}

// Pool looks up a configured pool by name.
func (c *Config) Pool(name string) (pricing.Pool, error) {
	pool, ok := c.Pools[strings.ToLower(name)]
	if !ok {
		return pricing.Pool{}, fmt.Errorf("pool %s not in config", name)
	}
	return pool, nil
}

// DefaultConfigPath returns $HOME/.crest/pools.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".crest", "pools.yaml"), nil
}

// LoadConfig reads the pool universe from path, or from the default location
// when path is empty. CREST_-prefixed environment variables override the
// scalar keys.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	config := &Config{
		ChainID: cast.ToUint32(v.Get("chain_id")),
		Pools:   make(map[string]pricing.Pool),
	}

	if raw := v.GetString("factory"); raw != "" {
		factory, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid factory %s: %w", raw, err)
		}
		if len(factory) != pairaddr.AddressLen {
			return nil, fmt.Errorf("factory must be %d bytes, got %d", pairaddr.AddressLen, len(factory))
		}
		config.Factory = factory
	}

	if raw := v.GetString("init_code_hash"); raw != "" {
		hash, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid init_code_hash %s: %w", raw, err)
		}
		if len(hash) != len(config.InitCodeHash) {
			return nil, fmt.Errorf("init_code_hash must be %d bytes, got %d", len(config.InitCodeHash), len(hash))
		}
		copy(config.InitCodeHash[:], hash)
	}

	for name, raw := range v.GetStringMap("pools") {
		entry, err := cast.ToStringMapE(raw)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", name, err)
		}
		pool, err := poolFromConfig(config.ChainID, entry)
		if err != nil {
			return nil, fmt.Errorf("pool %s: %w", name, err)
		}
		config.Pools[name] = pool
	}

	return config, nil
}

// poolFromConfig builds a pool from one pools.<name> map. Reserves are
// decimal strings so YAML never routes them through floats; curve defaults
// to constant_product, boosts to 1, fee to 0, gate to sell_either.
func poolFromConfig(chainID uint32, entry map[string]any) (pricing.Pool, error) {
	denomA, err := cast.ToStringE(entry["asset_a"])
	if err != nil || denomA == "" {
		return pricing.Pool{}, fmt.Errorf("missing or invalid asset_a")
	}
	denomB, err := cast.ToStringE(entry["asset_b"])
	if err != nil || denomB == "" {
		return pricing.Pool{}, fmt.Errorf("missing or invalid asset_b")
	}

	assetA, err := types.NewAsset(chainID, denomA)
	if err != nil {
		return pricing.Pool{}, err
	}
	assetB, err := types.NewAsset(chainID, denomB)
	if err != nil {
		return pricing.Pool{}, err
	}

	reserveA, err := reserveFromConfig(assetA, entry["reserve_a"])
	if err != nil {
		return pricing.Pool{}, err
	}
	reserveB, err := reserveFromConfig(assetB, entry["reserve_b"])
	if err != nil {
		return pricing.Pool{}, err
	}

	curveStr := cast.ToString(entry["curve"])
	if curveStr == "" {
		curveStr = "constant_product"
	}
	curve, err := types.ParseCurveMode(curveStr)
	if err != nil {
		return pricing.Pool{}, err
	}

	gate, err := types.ParseTradeGate(cast.ToString(entry["gate"]))
	if err != nil {
		return pricing.Pool{}, err
	}

	feeBps, err := cast.ToUint32E(entry["fee_bps"])
	if err != nil {
		return pricing.Pool{}, fmt.Errorf("invalid fee_bps: %w", err)
	}

	boostLow := uint64(1)
	if raw, ok := entry["boost_low"]; ok {
		boostLow, err = cast.ToUint64E(raw)
		if err != nil {
			return pricing.Pool{}, fmt.Errorf("invalid boost_low: %w", err)
		}
	}
	boostHigh := uint64(1)
	if raw, ok := entry["boost_high"]; ok {
		boostHigh, err = cast.ToUint64E(raw)
		if err != nil {
			return pricing.Pool{}, fmt.Errorf("invalid boost_high: %w", err)
		}
	}

	return pricing.NewPool(reserveA, reserveB, curve, feeBps, boostLow, boostHigh, gate)
}

// reserveFromConfig parses one reserve value as a decimal integer string.
func reserveFromConfig(asset types.Asset, raw any) (types.Amount, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return types.Amount{}, fmt.Errorf("reserve for %s: %w", asset, err)
	}
	n, ok := math.NewIntFromString(s)
	if !ok {
		return types.Amount{}, fmt.Errorf("invalid reserve %s for %s", s, asset)
	}
	return types.NewAmount(asset, n)
}
