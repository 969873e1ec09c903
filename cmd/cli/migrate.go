package main

import (
	"fmt"
	"log"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Run: func(cmd *cobra.Command, args []string) {
		database.Connect()

		if err := database.DB.AutoMigrate(&models.User{}, &models.Link{}, &models.Click{}); err != nil {
			log.Fatalf("FATAL: migrations failed: %v", err)
		}

		fmt.Println("Database migrations executed successfully.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
