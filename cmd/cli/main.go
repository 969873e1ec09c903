package main

import (
	"os"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/config"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "atomzr",
	Short: "Admin CLI for the Atomzr URL shortener",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		logger.Init(os.Getenv("GO_ENV"))
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
