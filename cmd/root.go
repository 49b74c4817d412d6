package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the daybrief application
var rootCmd = &cobra.Command{
	Use:   "daybrief",
	Short: "Sends today's calendar agenda to a Telegram chat",
	Long: `daybrief fetches today's events from your calendar sources (Google
Calendar IDs and ICS subscription URLs), formats them into a plain-text
agenda and sends it to a single Telegram chat.

It can run as:
  - A one-shot command triggered by an external scheduler (default)
  - A small daemon with an internal cron schedule (serve)`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "daybrief version %s\n" .Version}}`)

	// If no subcommand is provided, run the send command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "send")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
