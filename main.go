package main

import (
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/arbwatch/arbwatch/src/data"
	"github.com/arbwatch/arbwatch/src/handler"
	"github.com/arbwatch/arbwatch/src/server"
	"github.com/arbwatch/arbwatch/src/spreads"
	"github.com/arbwatch/arbwatch/src/utils"
)

func main() {
	if err := utils.InitEnvironmentVariables(os.Getenv("GO_ENV")); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatalf("missing DATABASE_URL environment variable")
	}

	db, err := data.NewDatabaseService(dsn)
	if err != nil {
		log.Fatalf("failed to set up database: %v", err)
	}

	liquidity, err := spreads.LoadLiquidityConfig(os.Getenv("LIQUIDITY_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load liquidity config: %v", err)
	}

	router := server.Setup(handler.NewSpreadHandler(db, liquidity))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Infof("listening on :%s", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), router); err != nil {
		log.Fatal(err)
	}
}
