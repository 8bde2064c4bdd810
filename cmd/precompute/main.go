// Command precompute promotes the earliest day that still has unprocessed
// rows. Run repeatedly (or under an external scheduler) to drain a backlog one
// day per invocation, mirroring the service's promotion path exactly.
package main

import (
	"fmt"
	"os"

	"mental-insights/config"
	"mental-insights/database"
	"mental-insights/insights"
	"mental-insights/logger"
	"mental-insights/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open database:", err)
		os.Exit(1)
	}

	date, ok, err := store.NewRecords(db).EarliestUnprocessedDate()
	if err != nil {
		fmt.Fprintln(os.Stderr, "earliest unprocessed date:", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("No unprocessed data remaining.")
		return
	}
	fmt.Printf("Processing insights for earliest unprocessed date: %s\n", date)

	svc := insights.New(db, log, cfg.ModelPath, cfg.MinDailyRows, cfg.TopFeatures)
	if _, err := svc.Promote(date); err != nil {
		fmt.Fprintln(os.Stderr, "promote:", err)
		os.Exit(1)
	}
	fmt.Printf("Daily insights saved for %s\n", date)
}
