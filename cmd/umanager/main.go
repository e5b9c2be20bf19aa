package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/keketcl/umanager/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "umanager",
	Short: "Manage removable USB devices",
	Long:  "umanager enumerates attached USB devices, inspects their storage volumes, and performs safe eject",
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(
		app.NewListCommand(),
		app.NewInfoCommand(),
		app.NewStorageCommand(),
		app.NewBrowseCommand(),
		app.NewWatchCommand(),
		app.NewServiceCommand(),
		app.NewConfigCommand(),
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
