package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/crestswap/crest/types"
)

// GetPoolCmd returns the pool inspection commands
func GetPoolCmd() *cobra.Command {
	poolCmd := &cobra.Command{
		Use:                        "pool",
		Short:                      "Inspect configured pools",
		SuggestionsMinimumDistance: 2,
	}

	poolCmd.AddCommand(
		GetCmdPoolList(),
		GetCmdPoolShow(),
		GetCmdPoolAddress(),
	)

	return poolCmd
}

// GetCmdPoolList returns the command to list all configured pools
func GetCmdPoolList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List configured pools",
		Long: `List every pool in the config with a one-line summary.

Example:
  $ crestcli pool list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(cliCtx.config.Pools))
			for name := range cliCtx.config.Pools {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				cmd.Printf("%-16s %s\n", name, cliCtx.config.Pools[name])
			}
			return nil
		},
	}
}

// GetCmdPoolShow returns the command to show one pool in detail
func GetCmdPoolShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show [pool]",
		Short: "Show a pool's reserves, curve, and spot prices",
		Long: `Show detailed information about one configured pool.

Example:
  $ crestcli pool show ab`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			pool, err := cliCtx.config.Pool(args[0])
			if err != nil {
				return err
			}

			assetA, assetB := pool.Assets()
			cmd.Printf("pair:        %s / %s\n", assetA, assetB)
			cmd.Printf("reserves:    %s, %s\n", pool.ReserveA(), pool.ReserveB())
			cmd.Printf("curve:       %s\n", pool.CurveMode())
			if pool.CurveMode() == types.CurveBoosted {
				low, high := pool.Boosts()
				cmd.Printf("boosts:      low=%d high=%d\n", low, high)
				cmd.Printf("sqrt(k):     %s\n", pool.SqrtK())
			}
			cmd.Printf("fee:         %d bps\n", pool.FeeBps())
			cmd.Printf("gate:        %s\n", pool.TradeGate())
			cmd.Printf("share asset: %s\n", pool.ShareAsset())

			if price, err := pool.SpotPrice(assetA); err == nil {
				cmd.Printf("spot %s->%s: %s\n", assetA.Denom, assetB.Denom, price)
			}
			if price, err := pool.SpotPrice(assetB); err == nil {
				cmd.Printf("spot %s->%s: %s\n", assetB.Denom, assetA.Denom, price)
			}
			return nil
		},
	}
}

// GetCmdPoolAddress returns the command to derive a pool's pair address
func GetCmdPoolAddress() *cobra.Command {
	return &cobra.Command{
		Use:   "address [pool]",
		Short: "Derive the deterministic pair address for a pool",
		Long: `Derive the 20-byte pair address for a pool's asset pair from the
configured factory address and init code hash.

Example:
  $ crestcli pool address ab`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			pool, err := cliCtx.config.Pool(args[0])
			if err != nil {
				return err
			}
			if len(cliCtx.config.Factory) == 0 {
				return fmt.Errorf("factory not configured")
			}

			assetA, assetB := pool.Assets()
			addr, err := cliCtx.cache.Lookup(cliCtx.config.Factory, cliCtx.config.InitCodeHash, assetA, assetB)
			if err != nil {
				return err
			}

			cmd.Println(addr)
			return nil
		},
	}
}
