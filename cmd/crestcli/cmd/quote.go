package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/crestswap/crest/pricing"
	"github.com/crestswap/crest/types"
)

// GetQuoteCmd returns the trade pricing commands
func GetQuoteCmd() *cobra.Command {
	quoteCmd := &cobra.Command{
		Use:                        "quote",
		Short:                      "Price trades against a configured pool",
		SuggestionsMinimumDistance: 2,
	}

	quoteCmd.AddCommand(
		GetCmdQuoteOutput(),
		GetCmdQuoteInput(),
	)

	return quoteCmd
}

// GetCmdQuoteOutput returns the command to price an exact-input trade
func GetCmdQuoteOutput() *cobra.Command {
	return &cobra.Command{
		Use:   "out [pool] [asset-in] [amount-in]",
		Short: "Price an exact-input trade",
		Long: `Compute the output delivered for an exact input amount, along with the
pool state the trade would leave behind. Rounding always favors the pool.

Example:
  $ crestcli quote out ab ucrest 1000000000000000000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			pool, amount, err := poolAndAmount(cliCtx.config, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			quote, next, err := pool.QuoteOutput(amount)
			if err != nil {
				return err
			}

			printQuote(cmd, quote, next)
			return nil
		},
	}
}

// GetCmdQuoteInput returns the command to price an exact-output trade
func GetCmdQuoteInput() *cobra.Command {
	return &cobra.Command{
		Use:   "in [pool] [asset-out] [amount-out]",
		Short: "Price an exact-output trade",
		Long: `Compute the input required to receive an exact output amount, along with
the pool state the trade would leave behind.

Example:
  $ crestcli quote in ab uusd 987158034397061298`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			pool, amount, err := poolAndAmount(cliCtx.config, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			quote, next, err := pool.QuoteInput(amount)
			if err != nil {
				return err
			}

			printQuote(cmd, quote, next)
			return nil
		},
	}
}

// poolAndAmount resolves a pool by name and parses the trade amount in the
// given denom.
func poolAndAmount(config *Config, poolName, denom, value string) (pricing.Pool, types.Amount, error) {
	pool, err := config.Pool(poolName)
	if err != nil {
		return pricing.Pool{}, types.Amount{}, err
	}
	asset, err := config.Asset(denom)
	if err != nil {
		return pricing.Pool{}, types.Amount{}, err
	}
	n, ok := math.NewIntFromString(value)
	if !ok {
		return pricing.Pool{}, types.Amount{}, fmt.Errorf("invalid amount %s", value)
	}
	amount, err := types.NewAmount(asset, n)
	if err != nil {
		return pricing.Pool{}, types.Amount{}, err
	}
	return pool, amount, nil
}

func printQuote(cmd *cobra.Command, quote pricing.SwapQuote, next pricing.Pool) {
	cmd.Printf("amount in:  %s\n", quote.AmountIn)
	cmd.Printf("amount out: %s\n", quote.AmountOut)
	if quote.IdealOut.GT(quote.AmountOut.Amount) {
		cmd.Printf("ideal out:  %s (clamped to reserve)\n", quote.IdealOut)
	}
	cmd.Printf("fee:        %d bps\n", quote.FeeBps)
	cmd.Printf("next state: %s\n", next)
}
