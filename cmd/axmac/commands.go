package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/shibukawa/axmac"
	"github.com/shibukawa/axmac/gen"
	"github.com/shibukawa/axmac/markdownparser"
	"github.com/shibukawa/axmac/rewrite"
)

// Sentinel errors
var (
	ErrInputNotExist    = errors.New("input path does not exist")
	ErrValidationFailed = errors.New("validation failed")
	ErrConfigFileExists = errors.New("configuration file already exists")
	ErrNoOutputComputed = errors.New("no output destination could be computed")
)

// ExpandCmd represents the expand command
type ExpandCmd struct {
	Input   string `short:"i" help:"Input file or directory" type:"path"`
	Dialect string `help:"Output dialect (native, go)"`
	DryRun  bool   `help:"Report expansions without writing output"`
}

// Run executes the expand command
func (cmd *ExpandCmd) Run(ctx *Context) error {
	config, rewriter, err := setup(ctx, cmd.Dialect)
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd.Input, config)
	if err != nil {
		return err
	}

	totalSites := 0
	totalFiles := 0

	for _, file := range files {
		expansions, err := expandFile(ctx, config, rewriter, file, cmd.DryRun)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}

		if len(expansions) > 0 {
			totalFiles++
			totalSites += len(expansions)
		}
	}

	if !ctx.Quiet {
		color.Green("Expanded %d invocation(s) in %d file(s)", totalSites, totalFiles)
	}

	return nil
}

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Input string `short:"i" help:"Input file or directory" type:"path"`
}

// Run executes the validate command. Unlike expand, it keeps going after
// the first failure and reports every malformed invocation.
func (cmd *ValidateCmd) Run(ctx *Context) error {
	config, rewriter, err := setup(ctx, "")
	if err != nil {
		return err
	}

	files, err := collectFiles(cmd.Input, config)
	if err != nil {
		return err
	}

	failures := 0

	for _, file := range files {
		if _, err := expandFile(ctx, config, rewriter, file, true); err != nil {
			failures++

			if !ctx.Quiet {
				color.Red("%s: %v", file, err)
			}
		}
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d file(s) with malformed invocations", ErrValidationFailed, failures)
	}

	if !ctx.Quiet {
		color.Green("All %d file(s) are valid", len(files))
	}

	return nil
}

func setup(ctx *Context, dialectOverride string) (*axmac.Config, *rewrite.Rewriter, error) {
	config, err := axmac.LoadConfig(ctx.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dialectName := config.Dialect
	if dialectOverride != "" {
		dialectName = dialectOverride
	}

	dialect, err := gen.New(dialectName)
	if err != nil {
		return nil, nil, err
	}

	return config, rewrite.New(dialect), nil
}

// collectFiles walks the input path and returns files matching the
// configured include/exclude patterns, in walk order
func collectFiles(input string, config *axmac.Config) ([]string, error) {
	root := input
	if root == "" {
		root = config.InputDir
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotExist, root)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string

	// never descend into the output tree, wherever it sits under root
	outputDir := ""
	if config.Output.Dir != "" {
		if abs, err := filepath.Abs(config.Output.Dir); err == nil {
			outputDir = abs
		}
	}

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if outputDir != "" {
				if abs, err := filepath.Abs(path); err == nil && abs == outputDir {
					return filepath.SkipDir
				}
			}

			return nil
		}

		if matchesPatterns(entry.Name(), config.Include) && !matchesPatterns(entry.Name(), config.Exclude) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input directory: %w", err)
	}

	return files, nil
}

func matchesPatterns(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}

	return false
}

// expandFile rewrites one file and writes the result to the configured
// destination unless dryRun is set
func expandFile(ctx *Context, config *axmac.Config, rewriter *rewrite.Rewriter, path string, dryRun bool) ([]rewrite.Expansion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	var (
		output     string
		expansions []rewrite.Expansion
	)

	if strings.EqualFold(filepath.Ext(path), ".md") {
		output, expansions, err = markdownparser.Expand(strings.NewReader(string(data)), rewriter)
	} else {
		output, expansions, err = rewriter.Rewrite(string(data))
	}

	if err != nil {
		return nil, err
	}

	if ctx.Verbose {
		color.Blue("Expanding %s", path)

		for _, hit := range expansions {
			fmt.Printf("  %d:%d %s!(%s) -> %s\n", hit.Line, hit.Column, hit.Macro, hit.Input, hit.Output)
		}
	}

	if dryRun || len(expansions) == 0 {
		return expansions, nil
	}

	target, err := outputPath(config, path)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(target, []byte(output), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output file: %w", err)
	}

	return expansions, nil
}

// outputPath resolves the destination for one input file
func outputPath(config *axmac.Config, path string) (string, error) {
	switch {
	case config.Output.InPlace:
		return path, nil
	case config.Output.Suffix != "":
		ext := filepath.Ext(path)
		return strings.TrimSuffix(path, ext) + config.Output.Suffix + ext, nil
	case config.Output.Dir != "":
		rel, err := filepath.Rel(config.InputDir, path)
		if err != nil {
			rel = filepath.Base(path)
		}

		return filepath.Join(config.Output.Dir, rel), nil
	default:
		return "", ErrNoOutputComputed
	}
}
