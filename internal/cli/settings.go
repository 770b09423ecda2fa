package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/fndoc/internal/config"
	"github.com/spf13/cobra"
)

// settings is the configuration of one command invocation.
type settings struct {
	config  *config.Config
	verbose bool
}

// overrides holds the command-line values that take precedence over config.
// Nil fields were not given.
type overrides struct {
	tags         []string
	continuation *bool
	encoding     *string
}

// overridesFromFlags collects the flags the user actually set.
func overridesFromFlags(cmd *cobra.Command) overrides {
	var o overrides
	flags := cmd.Flags()
	if flags.Changed("tags") {
		o.tags = tagsFlag
	}
	if flags.Changed("no-continuation") {
		continuation := !noContinuation
		o.continuation = &continuation
	}
	if flags.Changed("encoding") {
		encoding := encodingFlag
		o.encoding = &encoding
	}
	return o
}

// apply writes the overrides into cfg and revalidates it.
func (o overrides) apply(cfg *config.Config) error {
	if o.tags != nil {
		cfg.Annotations.SupportedTags = append([]string(nil), o.tags...)
	}
	if o.continuation != nil {
		cfg.Annotations.MultiLineContinuation = *o.continuation
	}
	if o.encoding != nil {
		cfg.Annotations.TextEncoding = *o.encoding
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// loadSettings loads configuration for rootDir (or --config) and applies flags.
func loadSettings(rootDir string, cmd *cobra.Command) (*settings, error) {
	loader := config.NewLoader(rootDir)
	if cfgFile != "" {
		loader = config.NewFileLoader(cfgFile)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose && loader.ConfigFileUsed() != "" {
		log.Println("Using config file:", loader.ConfigFileUsed())
	}

	if err := overridesFromFlags(cmd).apply(cfg); err != nil {
		return nil, err
	}

	return &settings{config: cfg, verbose: verbose}, nil
}

// signalContext returns a context cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
