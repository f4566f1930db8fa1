// Package cli provides the command-line interface for studentdb.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/leengari/studentdb/internal/config"
	"github.com/leengari/studentdb/internal/logging"
	"github.com/leengari/studentdb/internal/menu"
	"github.com/leengari/studentdb/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	dataFile string
	verbose  bool
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studentdb",
		Short: "Interactive student record manager",
		Long: `studentdb manages student records in a flat delimited file with a
schema that can evolve over time: columns can be added, deleted, renamed
and retyped while existing records stay consistent.`,
		Version:       Version,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", config.DefaultPath, "config file holding the default data file path")
	rootCmd.Flags().StringVarP(&dataFile, "file", "f", "", "data file path (overrides the config default)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	logger, closeFn := logging.SetupLogger(verbose)
	defer closeFn()
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	path := dataFile
	if path == "" {
		path = cfg.DefaultFilePath
	}

	out := cmd.OutOrStdout()
	printBanner(out)

	_, statErr := os.Stat(path)
	missing := statErr != nil && os.IsNotExist(statErr)
	if !missing {
		fmt.Fprintf(out, "Using data file: %s\n", path)
	}

	st, err := store.Open(path, logger)
	if err != nil {
		logger.Warn("continuing with whatever could be loaded", slog.Any("error", err))
	}

	m, err := menu.New(st, logger, func(newPath string) error {
		cfg.DefaultFilePath = newPath
		return config.Save(cfgFile, cfg)
	})
	if err != nil {
		return err
	}
	defer m.Close()

	if missing {
		fmt.Fprintf(out, "Default file '%s' not found.\n", path)
		created, err := m.OfferSetup()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !created {
			fmt.Fprintln(out, "Exiting program.")
			return nil
		}
	}

	return m.Run()
}

func printBanner(w io.Writer) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "       STUDENT MANAGEMENT SYSTEM")
	fmt.Fprintln(w, line)
}
