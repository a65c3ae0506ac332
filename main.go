package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mariner/app"
	"mariner/config"
	sentrypkg "mariner/internal/sentry"
	"mariner/log"
)

var (
	version     = "0.3.0"
	sessionFlag string
	resumeFlag  bool
	rootCmd     = &cobra.Command{
		Use:   "mariner",
		Short: "mariner - a two-panel terminal file manager.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize()
			defer log.Close()
			if w := log.Writer(); w != nil && sentrypkg.IsEnabled() {
				log.WarningLog.SetOutput(sentrypkg.NewWriter(w, sentrypkg.LevelWarning))
				log.ErrorLog.SetOutput(sentrypkg.NewWriter(w, sentrypkg.LevelError))
			}

			return app.Run(ctx, cfg, sessionFlag, resumeFlag)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mariner",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mariner version %s\n", version)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&sessionFlag, "session", "s", "",
		"Named session to restore on startup (tab rings for both panels)")
	rootCmd.Flags().BoolVar(&resumeFlag, "resume-last", false,
		"Start each panel in its most recently visited directory")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
