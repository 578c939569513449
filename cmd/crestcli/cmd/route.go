package cmd

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/crestswap/crest/router"
	"github.com/crestswap/crest/types"
)

// addMaxHopsFlag registers the hop bound shared by the route commands.
func addMaxHopsFlag(fs *pflag.FlagSet) {
	fs.Int(flagMaxHops, router.DefaultMaxHops, "maximum number of hops to consider")
}

// GetRouteCmd returns the routing commands
func GetRouteCmd() *cobra.Command {
	routeCmd := &cobra.Command{
		Use:                        "route",
		Short:                      "Find trade routes across configured pools",
		SuggestionsMinimumDistance: 2,
	}

	routeCmd.AddCommand(
		GetCmdRouteFind(),
		GetCmdRouteAll(),
	)

	return routeCmd
}

// GetCmdRouteFind returns the command to find the best route for a trade
func GetCmdRouteFind() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [asset-in] [asset-out] [amount-in]",
		Short: "Find the route with the best output for a trade",
		Long: `Search the configured pools for the route that delivers the most output
for the given input. A viable direct pool wins over multi-hop candidates.

Example:
  $ crestcli route find ucrest uatom 1000000000000000000 --max-hops 3`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			assetIn, assetOut, err := routeEndpoints(cliCtx.config, args[0], args[1])
			if err != nil {
				return err
			}
			n, ok := math.NewIntFromString(args[2])
			if !ok {
				return fmt.Errorf("invalid amount %s", args[2])
			}
			amount, err := types.NewAmount(assetIn, n)
			if err != nil {
				return err
			}
			maxHops, err := cmd.Flags().GetInt(flagMaxHops)
			if err != nil {
				return err
			}

			table := router.NewTable(cliCtx.logger, cliCtx.config.Pools)
			route, err := table.FindBestRoute(assetIn, assetOut, amount, maxHops)
			if err != nil {
				return err
			}
			quote, err := table.QuoteRoute(route, amount)
			if err != nil {
				return err
			}

			for i, hop := range route {
				cmd.Printf("hop %d: %s  %s -> %s\n", i+1, hop.Pool, quote.HopAmounts[i], quote.HopAmounts[i+1])
			}
			cmd.Printf("amount in:  %s\n", quote.AmountIn)
			cmd.Printf("amount out: %s\n", quote.AmountOut)
			return nil
		},
	}

	addMaxHopsFlag(cmd.Flags())
	return cmd
}

// GetCmdRouteAll returns the command to list every viable route
func GetCmdRouteAll() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all [asset-in] [asset-out]",
		Short: "List every route between two assets",
		Long: `List every route between two assets within the hop limit, without
pricing them.

Example:
  $ crestcli route all ucrest uatom`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			assetIn, assetOut, err := routeEndpoints(cliCtx.config, args[0], args[1])
			if err != nil {
				return err
			}
			maxHops, err := cmd.Flags().GetInt(flagMaxHops)
			if err != nil {
				return err
			}

			table := router.NewTable(cliCtx.logger, cliCtx.config.Pools)
			routes, err := table.FindAllRoutes(assetIn, assetOut, maxHops)
			if err != nil {
				return err
			}

			for i, route := range routes {
				pools := make([]string, len(route))
				for j, hop := range route {
					pools[j] = hop.Pool
				}
				cmd.Printf("route %d: %s\n", i+1, strings.Join(pools, " -> "))
			}
			return nil
		},
	}

	addMaxHopsFlag(cmd.Flags())
	return cmd
}

// routeEndpoints resolves the in and out denoms against the configured chain.
func routeEndpoints(config *Config, denomIn, denomOut string) (types.Asset, types.Asset, error) {
	assetIn, err := config.Asset(denomIn)
	if err != nil {
		return types.Asset{}, types.Asset{}, err
	}
	assetOut, err := config.Asset(denomOut)
	if err != nil {
		return types.Asset{}, types.Asset{}, err
	}
	return assetIn, assetOut, nil
}
