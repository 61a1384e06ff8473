package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wheelhouse-trading/wheelhouse/src/cmd/export_orders/run"
	"github.com/wheelhouse-trading/wheelhouse/src/eventmodels"
	"github.com/wheelhouse-trading/wheelhouse/src/eventservices"
	"github.com/wheelhouse-trading/wheelhouse/src/utils"
)

type RunArgs struct {
	IncludeExecuted bool
	GoEnv           string
	OutDir          string
}

type RunResult struct {
	Orders []*eventmodels.OptionOrder
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/export_orders/main.go --outDir ./exports",
	Short: "Export saved option orders to CSV",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		includeExecuted, err := cmd.Flags().GetBool("includeExecuted")
		if err != nil {
			log.Fatalf("error getting includeExecuted: %v", err)
		}

		if result, err := Run(RunArgs{
			IncludeExecuted: includeExecuted,
			GoEnv:           goEnv,
			OutDir:          outDir,
		}); err != nil {
			log.Errorf("Error: %v", err)
		} else {
			if outDir == "" {
				ordersJSON, err := json.MarshalIndent(result.Orders, "", "  ")
				if err != nil {
					log.Errorf("Failed to marshal orders: %v", err)
				} else {
					fmt.Println(string(ordersJSON))
				}
			} else {
				csvPath, err := run.ExportToCsv(outDir, result.Orders, "orders")
				if err != nil {
					log.Errorf("Failed to export to CSV: %v", err)
				} else {
					fmt.Println("CSV file written to: ", csvPath)
				}
			}
		}
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

	client := eventservices.NewDashboardClient(config.BackendURL, config.RequestTimeout())

	orders, err := client.FetchPendingOrders(ctx, args.IncludeExecuted)
	if err != nil {
		return RunResult{}, fmt.Errorf("error fetching orders: %v", err)
	}

	return RunResult{Orders: orders}, nil
}

func main() {
	runCmd.PersistentFlags().String("outDir", "", "Directory to write the CSV to; prints JSON to stdout when empty")
	runCmd.PersistentFlags().Bool("includeExecuted", true, "Include executed and canceled orders, not just pending ones")
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")

	if err := runCmd.Execute(); err != nil {
		log.Fatalf("error executing command: %v", err)
	}
}
