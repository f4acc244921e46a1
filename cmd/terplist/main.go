package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/terplist/terplist/internal/interfaces/cli/migrate"
	"github.com/terplist/terplist/internal/interfaces/cli/rank"
	"github.com/terplist/terplist/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "terplist",
		Short: "Terplist - community cannabis producer rankings",
		Long:  `Terplist is the community producer voting and ranking service, with drop calendars and notification fan-out.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		rank.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
