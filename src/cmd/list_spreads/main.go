package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arbwatch/arbwatch/src/data"
	"github.com/arbwatch/arbwatch/src/spreads"
	"github.com/arbwatch/arbwatch/src/utils"
)

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/list_spreads/main.go --dealID 42",
	Short: "Print watched spreads for a deal with derived metrics",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		dealID, err := cmd.Flags().GetUint("dealID")
		if err != nil {
			log.Fatalf("error getting dealID: %v", err)
		}

		if err := Run(goEnv, dealID); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(goEnv string, dealID uint) error {
	if err := utils.InitEnvironmentVariables(goEnv); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("missing DATABASE_URL environment variable")
	}

	db, err := data.NewDatabaseService(dsn)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	liquidity, err := spreads.LoadLiquidityConfig(os.Getenv("LIQUIDITY_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load liquidity config: %w", err)
	}

	views, err := spreads.BuildDealViews(db, dealID, time.Now().UTC(), liquidity)
	if err != nil {
		return fmt.Errorf("failed to build spread views: %w", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Type", "Expiration", "Status", "Entry", "Current", "P&L $", "P&L %", "Days", "Liquidity"})

	for _, view := range views {
		days := "?"
		if view.DaysToCloseKnown {
			days = fmt.Sprintf("%d", view.DaysToClose)
		}

		table.Append([]string{
			fmt.Sprintf("%d", view.ID),
			string(view.StrategyType),
			view.Expiration,
			string(view.Status),
			view.EntryPremium.StringFixed(2),
			view.CurrentPremium.StringFixed(2),
			view.PnLDollar.StringFixed(2),
			view.PnLPercent.StringFixed(2),
			days,
			fmt.Sprintf("%.1f", view.LiquidityScore),
		})
	}

	table.Render()

	return nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")
	runCmd.PersistentFlags().Uint("dealID", 0, "The deal to list watched spreads for")

	runCmd.MarkPersistentFlagRequired("dealID")

	if err := runCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
