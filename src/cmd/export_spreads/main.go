package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arbwatch/arbwatch/src/data"
	"github.com/arbwatch/arbwatch/src/spreads"
	"github.com/arbwatch/arbwatch/src/utils"
)

type RunArgs struct {
	GoEnv  string
	DealID uint
	OutDir string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/export_spreads/main.go --dealID 42 --outDir ./exports",
	Short: "Export watched spreads with derived metrics to CSV",
	Run: func(cmd *cobra.Command, args []string) {
		goEnv, err := cmd.Flags().GetString("go-env")
		if err != nil {
			log.Fatalf("error getting go-env: %v", err)
		}

		dealID, err := cmd.Flags().GetUint("dealID")
		if err != nil {
			log.Fatalf("error getting dealID: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		outPath, err := Run(RunArgs{
			GoEnv:  goEnv,
			DealID: dealID,
			OutDir: outDir,
		})
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("Exported to: %s\n", outPath)
	},
}

func Run(args RunArgs) (string, error) {
	if err := utils.InitEnvironmentVariables(args.GoEnv); err != nil {
		return "", fmt.Errorf("error loading environment variables: %w", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "", fmt.Errorf("missing DATABASE_URL environment variable")
	}

	db, err := data.NewDatabaseService(dsn)
	if err != nil {
		return "", fmt.Errorf("failed to set up database: %w", err)
	}

	liquidity, err := spreads.LoadLiquidityConfig(os.Getenv("LIQUIDITY_CONFIG"))
	if err != nil {
		return "", fmt.Errorf("failed to load liquidity config: %w", err)
	}

	views, err := spreads.BuildDealViews(db, args.DealID, time.Now().UTC(), liquidity)
	if err != nil {
		return "", fmt.Errorf("failed to build spread views: %w", err)
	}

	if err := os.MkdirAll(args.OutDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outPath := filepath.Join(args.OutDir, fmt.Sprintf("spreads-deal-%d.csv", args.DealID))
	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	if err := gocsv.MarshalFile(&views, outFile); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}

	return outPath, nil
}

func main() {
	runCmd.PersistentFlags().String("go-env", "development", "The go environment to run the command in")
	runCmd.PersistentFlags().Uint("dealID", 0, "The deal to export watched spreads for")
	runCmd.PersistentFlags().String("outDir", "exports", "The directory to write the CSV to")

	runCmd.MarkPersistentFlagRequired("dealID")

	if err := runCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
