// Command ephemerisctl is a terminal client for the satellite catalog:
// paced upstream fetches, normalization, and geodetic math without running
// the HTTP daemon.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/slimtomatillo/ephemeris/internal/catalog"
	"github.com/slimtomatillo/ephemeris/internal/config"
	"github.com/slimtomatillo/ephemeris/internal/uphere"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ephemerisctl",
	Short: "query the satellite catalog from the terminal",
	Long: `ephemerisctl talks to the upstream satellite API directly, with the
same pacing, retry, and normalization behavior as the ephemeris daemon.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests to stderr")
}

// newCatalog builds a client and catalog from the environment.
func newCatalog() (*catalog.Service, *uphere.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	out := io.Discard
	if verbose {
		out = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(out, nil))

	client := uphere.New(uphere.Config{
		APIKey:            cfg.APIKey,
		APIHost:           cfg.APIHost,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.RequestTimeout,
	}, logger)

	return catalog.New(client, cfg.CacheTTL, logger), client, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
