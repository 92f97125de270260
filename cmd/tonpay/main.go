package main

import (
	"os"

	"github.com/spf13/cobra"

	"tonpay/internal/interfaces/cli/migrate"
	"tonpay/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tonpay",
		Short: "tonpay - payment coordination service",
		Long:  `tonpay coordinates TON wallet payments: invoices, bill splits, gifts and merchant payment requests, settled exactly once against an internal ledger.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
