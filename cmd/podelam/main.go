package main

import (
	"os"

	"github.com/spf13/cobra"

	"podelam/internal/interfaces/cli/migrate"
	"podelam/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "podelam",
		Short: "ПоДелам backend services",
		Long:  `Backend for the ПоДелам trainer access and tool sync services, with built-in server and migration commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
