package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mvp-joe/fndoc/internal/indexer"
	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	verbose        bool
	tagsFlag       []string
	noContinuation bool
	encodingFlag   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fndoc <file>",
	Short: "Extract documentation annotations from function declarations",
	Long: `fndoc locates the named function declarations in a source file and
parses the documentation comment above each one into annotations such as
@param, @returns and @throws.

The result is printed as JSON: one record per function with its name,
location and annotations, in document order.

Supported languages: TypeScript, JavaScript, Go, Python, Rust, C, PHP, Ruby.

Examples:
  # Extract annotations from a file
  fndoc src/math.ts

  # Recognize a custom tag set and keep each tag to its first line
  fndoc --tags @param,@since --no-continuation src/math.ts`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Arguments are valid past this point; failures are not usage errors
		cmd.SilenceUsage = true

		ctx, cancel := signalContext()
		defer cancel()

		settings, err := loadSettings(".", cmd)
		if err != nil {
			return err
		}
		return runExtract(ctx, settings, args[0], cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .fndoc/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringSliceVar(&tagsFlag, "tags", nil, "annotation tags to recognize (default @param,@returns,@throws)")
	rootCmd.PersistentFlags().BoolVar(&noContinuation, "no-continuation", false, "do not fold lines following a tag into its content")
	rootCmd.PersistentFlags().StringVar(&encodingFlag, "encoding", "", "source text encoding (default utf-8)")
}

// runExtract extracts one file and writes its function records as JSON.
func runExtract(ctx context.Context, s *settings, path string, out io.Writer) error {
	start := time.Now()

	functions, err := indexer.Extract(ctx, path, s.config.ToAnnotationConfig())
	if err != nil {
		return err
	}

	if s.verbose {
		log.Printf("Extracted %d functions from %s in %s", len(functions), path, time.Since(start).Round(time.Microsecond))
	}

	return writeJSON(out, functions)
}

// writeJSON pretty-prints v with a 2-space indent.
func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}
