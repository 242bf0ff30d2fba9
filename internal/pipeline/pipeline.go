// Package pipeline wires parsing, resolution and the config merge into
// one all-or-nothing run.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"wgresolve/internal/domainlist"
	"wgresolve/internal/netclass"
	"wgresolve/internal/resolver"
	"wgresolve/internal/wgconf"
)

// Options describe one run.
type Options struct {
	TemplatePath string
	DomainsArg   string
	// Class is the default class token for entries without an override.
	Class string
	// OutputPath is where the merged config is written; empty means the
	// template is rewritten in place.
	OutputPath string
	Overwrite  bool
}

// Result summarizes a successful run.
type Result struct {
	Domains int
	Routes  int
	Output  string
}

// Run executes the pipeline. The output file is written only after
// every entry resolved and the merge succeeded; any failure leaves the
// filesystem untouched.
func Run(ctx context.Context, opts Options, lookup resolver.Lookup) (Result, error) {
	// A bad default class fails before any resolution work, even if
	// every entry carries its own override.
	if _, err := netclass.Resolve(opts.Class); err != nil {
		return Result{}, fmt.Errorf("--class: %w", err)
	}

	lines, err := wgconf.Load(opts.TemplatePath)
	if err != nil {
		return Result{}, err
	}

	entries, err := domainlist.Parse(opts.DomainsArg)
	if err != nil {
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{}, fmt.Errorf("no domains to resolve in %q", opts.DomainsArg)
	}
	slog.Debug("parsed domain list", "entries", len(entries))

	routes, err := resolver.ResolveAll(ctx, entries, opts.Class, lookup)
	if err != nil {
		return Result{}, err
	}

	rendered := make([]string, len(routes))
	for i, r := range routes {
		rendered[i] = r.String()
	}

	mode := wgconf.Append
	if opts.Overwrite {
		mode = wgconf.Overwrite
	}
	merged, err := wgconf.Merge(lines, rendered, mode)
	if err != nil {
		return Result{}, err
	}

	output := opts.OutputPath
	if output == "" {
		output = opts.TemplatePath
	}
	if err := os.WriteFile(output, []byte(wgconf.Render(merged)), outputMode(opts.TemplatePath)); err != nil {
		return Result{}, fmt.Errorf("write output: %w", err)
	}
	slog.Debug("wrote merged config", "path", output, "routes", len(routes))

	return Result{Domains: len(entries), Routes: len(routes), Output: output}, nil
}

// outputMode mirrors the template's permissions on the output file.
// WireGuard configs carry private keys, so the fallback is owner-only.
func outputMode(templatePath string) fs.FileMode {
	if info, err := os.Stat(templatePath); err == nil {
		return info.Mode().Perm()
	}
	return 0o600
}
