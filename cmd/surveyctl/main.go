// Command surveyctl membaca dan mengisi survey Survei Kita dari terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	apiBase string
	siteURL string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "surveyctl",
	Short: "Lihat & isi survey Survei Kita dari terminal",
	Long: `surveyctl membaca survey dari survey API dan mengirim jawaban lewat
endpoint relay situs (POST /api/surveys/{id}/responses).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			zap.ReplaceGlobals(zap.NewNop())
			return nil
		}
		config := zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		logger, err := config.Build()
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBase, "api", envOr("API_BASE_URL", "http://localhost:8080"), "Base URL survey API")
	rootCmd.PersistentFlags().StringVar(&siteURL, "site", envOr("SITE_URL", "http://localhost:3000"), "Base URL situs (relay)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Batas waktu operasi")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log detail")

	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(fillCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
