package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/wheelhouse-trading/wheelhouse/src/economics"
	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/eventservices"
	"github.com/wheelhouse-trading/wheelhouse/src/utils"
)

type RunArgs struct {
	Tickers []string
	GoEnv   string
}

type RunResult struct {
	Sets    []*eventmodels.TickerWorkingSet
	Summary eventmodels.EarningsSummary
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/summary/main.go --tickers SOFI,PLTR",
	Short: "Print the weekly premium summary for a set of tickers",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		tickers, err := cmd.Flags().GetStringSlice("tickers")
		if err != nil {
			log.Fatalf("error getting tickers: %v", err)
		}

		result, err := Run(RunArgs{
			Tickers: tickers,
			GoEnv:   goEnv,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Println(renderSummary(result))
	},
}

func Run(args RunArgs) (RunResult, error) {
	ctx := context.Background()

	projectsDir := os.Getenv("PROJECTS_DIR")
	if projectsDir == "" {
		log.Fatalf("missing PROJECTS_DIR environment variable")
	}

	if err := utils.InitEnvironmentVariables(projectsDir, args.GoEnv); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	config, err := utils.LoadDashboardConfig(projectsDir)
	if err != nil {
		return RunResult{}, fmt.Errorf("error loading dashboard config: %v", err)
	}

	tickers := args.Tickers
	if len(tickers) == 0 {
		tickers = config.Tickers
	}

	if len(tickers) == 0 {
		return RunResult{}, fmt.Errorf("no tickers given and none configured")
	}

	client := eventservices.NewDashboardClient(config.BackendURL, config.RequestTimeout())

	acct, err := client.FetchAccountSummary(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching account summary: %v", err)
	}

	var sets []*eventmodels.TickerWorkingSet
	for _, ticker := range tickers {
		set := &eventmodels.TickerWorkingSet{
			Ticker:         ticker,
			OtmCallPercent: config.OtmPercent(),
			OtmPutPercent:  config.OtmPercent(),
		}

		chains, err := client.FetchOtmChains(ctx, []string{ticker}, config.OtmPercent(), eventmodels.Call)
		if err != nil {
			return RunResult{}, fmt.Errorf("error fetching call chain for %s: %v", ticker, err)
		}

		if chain := chains[ticker]; chain != nil {
			set.StockPrice = chain.StockPrice
			set.PositionShares = int(chain.Position)

			for _, dto := range chain.Calls {
				quote, convErr := dto.ToModel()
				if convErr != nil {
					log.Errorf("skipping call quote for %s: %v", ticker, convErr)
					continue
				}

				set.Calls = append(set.Calls, quote)
			}
		}

		putChains, err := client.FetchOtmChains(ctx, []string{ticker}, config.OtmPercent(), eventmodels.Put)
		if err != nil {
			return RunResult{}, fmt.Errorf("error fetching put chain for %s: %v", ticker, err)
		}

		if chain := putChains[ticker]; chain != nil {
			if set.StockPrice == 0 && chain.StockPrice > 0 {
				set.StockPrice = chain.StockPrice
				set.PositionShares = int(chain.Position)
			}

			for _, dto := range chain.Puts {
				quote, convErr := dto.ToModel()
				if convErr != nil {
					log.Errorf("skipping put quote for %s: %v", ticker, convErr)
					continue
				}

				set.Puts = append(set.Puts, quote)
			}
		}

		if len(set.Puts) > 0 {
			rec := economics.RecommendedPutQuantity(set.StockPrice, set.Puts[0].Strike, acct.CashBalance, len(tickers))
			set.PutQuantity = rec.Quantity
		}

		sets = append(sets, set)
	}

	return RunResult{
		Sets:    sets,
		Summary: economics.BuildEarningsSummary(sets, acct),
	}, nil
}

func renderSummary(result RunResult) string {
	display := &strings.Builder{}
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetColumnSeparator("")
	table.SetHeader([]string{"Ticker", "Price", "Shares", "Calls", "Puts", "Call Premium", "Put Premium"})

	for _, set := range result.Sets {
		var callPremium, putPremium float64
		if len(set.Calls) > 0 {
			if premium := set.Calls[0].SellPremium(); premium != nil && set.CallEligible() {
				callPremium = economics.PremiumTotal(premium, set.EligibleContracts())
			}
		}

		if len(set.Puts) > 0 {
			if premium := set.Puts[0].SellPremium(); premium != nil {
				putPremium = economics.PremiumTotal(premium, set.PutQuantity)
			}
		}

		table.Append([]string{
			set.Ticker,
			fmt.Sprintf("$%s", p.Sprintf("%.2f", set.StockPrice)),
			p.Sprintf("%d", set.PositionShares),
			p.Sprintf("%d", set.EligibleContracts()),
			p.Sprintf("%d", set.PutQuantity),
			fmt.Sprintf("$%s", p.Sprintf("%.2f", callPremium)),
			fmt.Sprintf("$%s", p.Sprintf("%.2f", putPremium)),
		})
	}

	table.Render()

	summary := result.Summary
	display.WriteString(fmt.Sprintf("\nWeekly premium: $%s", p.Sprintf("%.2f", summary.TotalWeeklyPremium)))
	display.WriteString(fmt.Sprintf("\nProjected 52-week earnings: $%s", p.Sprintf("%.2f", summary.ProjectedAnnualEarnings)))
	if summary.PortfolioValue > 0 {
		display.WriteString(fmt.Sprintf(" (%.1f%% of portfolio, %s)", summary.ProjectedAnnualReturn, summary.PortfolioValueSource))
	}

	if summary.ExcludedQuotes > 0 {
		display.WriteString(fmt.Sprintf("\nExcluded %d quotes with no market", summary.ExcludedQuotes))
	}

	display.WriteString("\n")

	return display.String()
}

func main() {
	runCmd.PersistentFlags().StringSlice("tickers", []string{}, "Comma separated tickers to summarize; defaults to the configured list")
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")

	if err := runCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
