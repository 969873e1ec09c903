package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/config"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/spf13/cobra"
)

var (
	bulkFileFlag string
	bulkCSVFlag  bool
)

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Create short links in bulk from a Caption;URL file",
	Long: `Reads a file with one Caption;URL entry per line, derives an alias
from each caption and creates the links in one batch.

Example:
  atomzr bulk --file=links.txt --csv > links.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(bulkFileFlag)
		if err != nil {
			log.Fatalf("FATAL: could not read %s: %v", bulkFileFlag, err)
		}

		database.Connect()
		database.InitRedis()

		cfg := config.AppConfig
		store := services.NewStore(database.DB)
		proc := services.NewBulkProcessor(store, services.NewQuota(), cfg.BaseURL, cfg.DailyBulkLimit)

		results, err := proc.Process(context.Background(), "cli", nil, strings.Split(string(data), "\n"))
		if err != nil {
			log.Fatalf("FATAL: bulk import failed: %v", err)
		}

		if bulkCSVFlag {
			if err := services.WriteBulkCSV(os.Stdout, results); err != nil {
				log.Fatalf("FATAL: could not write CSV: %v", err)
			}
			return
		}

		for _, r := range results {
			if r.Status == services.BulkStatusSuccess {
				fmt.Printf("OK    %-30s %s\n", r.Alias, r.ShortURL)
			} else {
				fmt.Printf("ERROR %-30s %s\n", r.Reason, r.Line)
			}
		}
	},
}

func init() {
	bulkCmd.Flags().StringVar(&bulkFileFlag, "file", "", "input file, one Caption;URL per line")
	bulkCmd.Flags().BoolVar(&bulkCSVFlag, "csv", false, "print successful items as CSV")

	if err := bulkCmd.MarkFlagRequired("file"); err != nil {
		log.Printf("WARN: could not mark --file as required: %v", err)
	}

	rootCmd.AddCommand(bulkCmd)
}
