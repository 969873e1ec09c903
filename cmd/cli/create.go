package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/config"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/services"
	"github.com/spf13/cobra"
)

var (
	longURLFlag string
	aliasFlag   string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a short link from a long URL",
	Long: `Shortens the given URL and prints the generated short code.

Example:
  atomzr create --url="https://www.example.com/some/long/path" --alias="my-link"`,
	Run: func(cmd *cobra.Command, args []string) {
		database.Connect()
		database.InitRedis()

		cfg := config.AppConfig
		store := services.NewStore(database.DB)
		shortener := services.NewShortener(store, services.NewQuota(), cfg.BaseURL, cfg.DailyLinkLimit)

		link, err := shortener.Create(context.Background(), "cli", nil, longURLFlag, aliasFlag)
		if err != nil {
			log.Fatalf("FATAL: failed to create short link: %v", err)
		}

		fmt.Println("Short URL created successfully:")
		fmt.Printf("Code: %s\n", link.ShortCode)
		fmt.Printf("Full URL: %s\n", shortener.ShortURL(link.ShortCode))
	},
}

func init() {
	createCmd.Flags().StringVar(&longURLFlag, "url", "", "long URL to shorten")
	createCmd.Flags().StringVar(&aliasFlag, "alias", "", "optional custom alias")

	if err := createCmd.MarkFlagRequired("url"); err != nil {
		log.Printf("WARN: could not mark --url as required: %v", err)
	}

	rootCmd.AddCommand(createCmd)
}
