package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xscan/internal/config"
	"xscan/internal/scan"
	"xscan/internal/xray"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Check the scan service version",
	Long:  `Queries the configured service and verifies it supports graph scans.`,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := config.FromViper()
	if err := config.Validate(cfg); err != nil {
		return err
	}

	client := xray.NewClient(cfg.URL, cfg.AccessToken, cfg.Timeout, logger)
	version, err := client.Version(cmd.Context())
	if err != nil {
		return fmt.Errorf("could not reach the scan service: %w", err)
	}

	if err := scan.CheckVersion(version); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Service version %s (graph scan supported, minimum %s)\n", version, scan.MinServiceVersion)
	return nil
}
