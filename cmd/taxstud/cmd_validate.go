package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taxstud/internal/store"
	"taxstud/internal/validation"
	"taxstud/internal/watch"
)

var watchMode bool

// validateCmd runs the full load pipeline over one or more data files
var validateCmd = &cobra.Command{
	Use:   "validate [file]...",
	Short: "Validate data files against their schemas",
	Long: `Runs the complete load pipeline for each file: JSON parse, schema
resolution, schema conformance, typed decode, and domain validation.
All domain violations are reported in one batch so every problem can be
fixed in a single pass.

Files validate independently and concurrently. With --watch (single file
only), the data file and its schema are watched and revalidation runs on
every change until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&watchMode, "watch", false, "revalidate on file changes (single file only)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if watchMode {
		if len(args) != 1 {
			return fmt.Errorf("--watch requires exactly one file")
		}
		return watchValidate(cmd, args[0])
	}

	out := cmd.OutOrStdout()
	results := make([]string, len(args))
	failed := false

	var mu sync.Mutex
	var g errgroup.Group
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			result, ok := validateOne(path)
			mu.Lock()
			results[i] = result
			if !ok {
				failed = true
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		fmt.Fprint(out, r)
	}
	if failed {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// validateOne runs the pipeline for a single file and renders its report.
func validateOne(path string) (string, bool) {
	data, sch, err := store.Load(path)
	if err != nil {
		logger.Debug("validation failed", zap.String("file", path), zap.Error(err))
		return fmt.Sprintf("✗ %s\n%s\n", path, formatViolations(err)), false
	}
	return fmt.Sprintf("✓ %s: %d item(s) valid against '%s'\n", path, len(data.Items), sch.Title), true
}

// formatViolations renders a load error, expanding a domain validation
// batch into a numbered list.
func formatViolations(err error) string {
	var list validation.ErrorList
	if errors.As(err, &list) {
		s := ""
		for i, v := range list {
			s += fmt.Sprintf("  %d. %s\n", i+1, v)
		}
		return s
	}
	return fmt.Sprintf("  %v\n", err)
}

func watchValidate(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	revalidate := func() {
		result, _ := validateOne(path)
		fmt.Fprint(out, result)
	}
	revalidate()

	paths := []string{path}
	if schemaPath := resolveSchemaPath(path); schemaPath != "" {
		paths = append(paths, schemaPath)
	}

	var mu sync.Mutex
	w, err := watch.New(paths, func(changed string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "--- change in %s ---\n", changed)
		revalidate()
	})
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", path)
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

// resolveSchemaPath best-effort resolves a data file's schema reference so
// the watcher can cover both files. Failures are fine; the data file watch
// still works.
func resolveSchemaPath(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	ref := store.SchemaRefFromBytes(raw)
	if ref == "" {
		return ""
	}
	return filepath.Join(filepath.Dir(path), ref)
}
