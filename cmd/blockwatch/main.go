package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcli"
	"github.com/blockwatch-dev/blockwatch/pkg/bwconsole"
	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
	"github.com/blockwatch-dev/blockwatch/pkg/bwdiff"
	"github.com/blockwatch-dev/blockwatch/pkg/bwerrors"
	"github.com/blockwatch-dev/blockwatch/pkg/bwlang"
	"github.com/blockwatch-dev/blockwatch/pkg/bwvalidate"
	"github.com/blockwatch-dev/blockwatch/pkg/bwvalidators"
	"github.com/blockwatch-dev/blockwatch/pkg/logger"
)

// Build-time variable set by GoReleaser.
var version = "dev"

var (
	verboseFlag  bool
	remapFlags   []string
	disableFlags []string
)

// exitError carries the process exit code a command failure should
// produce, per spec.md §6: 1 for an error-severity violation or a fatal
// error, 2 for CLI misuse.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func misuse(err error) error  { return &exitError{code: 2, err: err} }
func failure(err error) error { return &exitError{code: 1, err: err} }

var rootCmd = &cobra.Command{
	Use:          "blockwatch [paths...]",
	Short:        "Validate cross-cutting invariants encoded as <block> tags against a diff",
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			logger.SetDebug(true)
		}
	},
	RunE: runCheck,
}

var listCmd = &cobra.Command{
	Use:   "list [paths...]",
	Short: "Print every detected block, per file, as JSON",
	RunE:  runList,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringArrayVarP(&remapFlags, "extension", "E", nil, "remap an extension to a registered extension's language, KEY=VALUE (repeatable)")
	rootCmd.PersistentFlags().StringArrayVarP(&disableFlags, "disable", "D", nil, "disable a validator by code (repeatable)")
	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, formatFatal(ee.err))
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, formatFatal(err))
		os.Exit(2)
	}
}

func formatFatal(err error) string {
	var be *bwerrors.Error
	if errors.As(err, &be) {
		return be.Error()
	}
	return err.Error()
}

func buildRegistry() (*bwlang.Registry, error) {
	registry := bwlang.New()
	for _, remap := range remapFlags {
		from, to, ok := strings.Cut(remap, "=")
		if !ok {
			return nil, fmt.Errorf("invalid -E value %q, expected KEY=VALUE", remap)
		}
		from = normalizeExt(from)
		if !registry.AddRemap(from, normalizeExt(to)) {
			return nil, fmt.Errorf("-E %q: %q is not a registered extension", remap, to)
		}
	}
	return registry, nil
}

func normalizeExt(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.ToLower(ext)
}

func buildEngine() *bwvalidate.Engine {
	disabled := make(map[string]bool, len(disableFlags))
	for _, code := range disableFlags {
		disabled[code] = true
	}
	return bwvalidate.New(bwvalidators.Enabled(bwvalidators.All(), disabled))
}

func readStdin() ([]byte, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		// Interactive terminal, not a pipe: treat as an empty patch
		// (spec.md §6: an empty input yields an empty modified-range
		// set and exit code 0).
		return nil, nil
	}
	return io.ReadAll(os.Stdin)
}

func runCheck(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry()
	if err != nil {
		return misuse(err)
	}
	patch, err := readStdin()
	if err != nil {
		return failure(fmt.Errorf("failed to read standard input: %w", err))
	}

	result, err := bwcli.Check(cmd.Context(), registry, buildEngine(), patch, args)
	if err != nil {
		return failure(err)
	}

	if err := writeViolations(result.ViolationsByFile); err != nil {
		return failure(err)
	}

	if hasErrorSeverity(result.ViolationsByFile) {
		return &exitError{code: 1, err: fmt.Errorf("one or more blocks failed validation")}
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry()
	if err != nil {
		return misuse(err)
	}

	patch, err := readStdin()
	if err != nil {
		return failure(fmt.Errorf("failed to read standard input: %w", err))
	}
	var modifiedRanges map[string][]bwdiff.Range
	if len(patch) > 0 {
		modifiedRanges, err = bwdiff.Extract(bytes.NewReader(patch))
		if err != nil {
			return failure(fmt.Errorf("failed to parse diff: %w", err))
		}
	}

	listings, err := bwcli.List(registry, modifiedRanges, args)
	if err != nil {
		return failure(err)
	}

	if bwconsole.TerminalModeEnabled(os.Getenv("BLOCKWATCH_TERMINAL_MODE")) {
		printListingsStyled(listings)
		return nil
	}
	return json.NewEncoder(os.Stdout).Encode(listings)
}

func writeViolations(violationsByFile map[string][]bwcore.Violation) error {
	if len(violationsByFile) == 0 {
		return nil
	}
	enc := json.NewEncoder(os.Stderr)
	return enc.Encode(violationsByFile)
}

func hasErrorSeverity(violationsByFile map[string][]bwcore.Violation) bool {
	for _, violations := range violationsByFile {
		if bwcore.MaxSeverity(violations) == bwcore.SeverityError {
			return true
		}
	}
	return false
}

func printListingsStyled(listings map[string][]bwcli.BlockListing) {
	for _, file := range sortedKeys(listings) {
		children := make([]bwconsole.TreeNode, 0, len(listings[file]))
		for _, b := range listings[file] {
			name := b.Name
			if name == "" {
				name = "(unnamed)"
			}
			modified := ""
			if b.IsContentModified {
				modified = " [modified]"
			}
			children = append(children, bwconsole.TreeNode{
				Value: fmt.Sprintf("%s:%d:%d%s", name, b.Line, b.Column, modified),
			})
		}
		fmt.Println(bwconsole.RenderTree(bwconsole.TreeNode{Value: file, Children: children}))
	}
}

func sortedKeys(m map[string][]bwcli.BlockListing) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
