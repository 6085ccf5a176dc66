// Package main implements the career_agent CLI: career transition ranking,
// course matching and the recommendation API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career transition and course recommendation engine",
	Long: `career_agent ranks the jobs a user can move into from their current profile and
recommends courses that teach the skills each move requires.

Configuration is layered: built-in defaults, an optional YAML file (--config or
CONFIG_PATH), then environment variables such as DATABASE_URL and GEMINI_API_KEY.`,
	SilenceUsage: true,
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (optional)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
