// Command validate checks the rule configuration JSON files in the configs
// directory. For each file it checks:
//   - JSON structure and required fields, via the same parser the server uses
//   - Scoring bounds and the %d placeholder in the victory message
//   - That the file name matches the ID derived from the display name
//   - That a deal with the config satisfies the table invariants
//
// With no arguments it scans ../configs; files or a -dir can be given instead.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/klondike-game/game/config"
	"github.com/wricardo/klondike-game/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// Errors fail the file; Info lines are printed for valid files and Warnings
// for both.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
	Info     []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	cfg, err := config.Parse(data)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	id := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if derived := config.ConfigID(cfg.Name); derived != id {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("file name %q differs from the ID %q derived from name %q", id, derived, cfg.Name))
	}

	if cfg.FoundationPoints == 0 {
		result.Warnings = append(result.Warnings, "foundation_points is 0, every game scores 0 or less")
	}

	// Deal once to make sure the config produces a legal table
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		result.fail("Engine rejected config: %v", err)
		return result
	}
	state := eng.GetState()
	if err := engine.CheckInvariants(state); err != nil {
		result.fail("Deal violates table invariants: %v", err)
		return result
	}

	seed := "random"
	if cfg.Seed != 0 {
		seed = fmt.Sprintf("%d", cfg.Seed)
	}

	result.Info = append(result.Info,
		fmt.Sprintf("✓ Name: %s (id %s)", cfg.Name, id),
		fmt.Sprintf("✓ Scoring: foundation %+d, draw %+d", cfg.FoundationPoints, cfg.DrawPoints),
		fmt.Sprintf("✓ Strict runs: %v", cfg.StrictRuns),
		fmt.Sprintf("✓ Seed: %s", seed),
		fmt.Sprintf("✓ Opening moves: %d", len(eng.LegalMoves())),
	)

	return result
}

// collectFiles returns the files named on the command line, or every *.json
// file in dir when none are given.
func collectFiles(dir string, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files found in %s", dir)
	}
	return files, nil
}

// report prints one result block and returns whether the file was valid.
func report(out io.Writer, result ValidationResult, quiet bool) bool {
	if quiet && result.Valid && len(result.Warnings) == 0 {
		return true
	}

	fmt.Fprintf(out, "\n%s %s\n", strings.Repeat("=", 20), result.File)

	if result.Valid {
		fmt.Fprintln(out, "✅ VALID")
		if !quiet {
			for _, info := range result.Info {
				fmt.Fprintln(out, "  "+info)
			}
		}
	} else {
		fmt.Fprintln(out, "❌ INVALID")
		for _, err := range result.Errors {
			fmt.Fprintln(out, "  ❌ "+err)
		}
	}

	for _, warning := range result.Warnings {
		fmt.Fprintln(out, "  ⚠ "+warning)
	}

	return result.Valid
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate Klondike rule configuration files",
		ArgsUsage: "[file.json ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   "../configs",
				Usage:   "directory scanned when no files are given",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "only print files with errors or warnings",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files, err := collectFiles(cmd.String("dir"), cmd.Args().Slice())
			if err != nil {
				return err
			}

			out := cmd.Root().Writer
			if out == nil {
				out = os.Stdout
			}

			invalid := 0
			for _, file := range files {
				if !report(out, validateConfig(file), cmd.Bool("quiet")) {
					invalid++
				}
			}

			fmt.Fprintf(out, "\n%s\n", strings.Repeat("=", 40))
			if invalid > 0 {
				fmt.Fprintln(out, "❌ Some configurations have errors")
				return fmt.Errorf("%d of %d configurations are invalid", invalid, len(files))
			}
			fmt.Fprintln(out, "✅ All configurations are valid!")
			return nil
		},
	}
}

// main validates the configuration files and exits with non-zero status if any are invalid.
func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
