package main

import (
	"fmt"
	"os"

	"wgresolve/cmd/wgresolve/ui"
	"wgresolve/internal/logging"
	"wgresolve/internal/pipeline"
	"wgresolve/internal/resolver"
	"wgresolve/internal/settings"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := logging.Configure(logging.LevelWarn); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMsg("%v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		debug     bool
		dnsServer string
		opts      pipeline.Options
	)

	// File-level defaults; every one of them yields to an explicit flag.
	defaults, _ := settings.LoadDefault()
	defaultClass := "32"
	if defaults.Class != "" {
		defaultClass = defaults.Class
	}

	root := &cobra.Command{
		Use:   "wgresolve <template> <domains>",
		Short: "Route selected domains through a WireGuard tunnel",
		Long: `wgresolve resolves domain names to IPv4 addresses and rewrites the
AllowedIPs value of the first [Peer] section in a WireGuard config
template, so that only traffic to those domains uses the tunnel.

The domains argument is either a single domain or a path to a list file
(one domain per line, optional ",<class>" suffix, "#" and "//" comments).`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelWarn
			if debug {
				level = logging.LevelDebug
			}
			return logging.Configure(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.TemplatePath = args[0]
			opts.DomainsArg = args[1]

			var lookup resolver.Lookup = resolver.System()
			if dnsServer != "" {
				lookup = resolver.Upstream(dnsServer)
			}

			res, err := pipeline.Run(cmd.Context(), opts, lookup)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMsg("Resolved %d domains into %d routes; wrote %s.",
				res.Domains, res.Routes, ui.Bold(res.Output)))
			return nil
		},
	}

	root.Flags().StringVar(&opts.Class, "class", defaultClass,
		"Default network class for resolved routes (A|B|C|HOST|<0-32>|/<0-32>)")
	root.Flags().StringVarP(&opts.OutputPath, "output", "o", "",
		"Write the merged config here instead of rewriting the template in place")
	root.Flags().BoolVar(&opts.Overwrite, "overwrite", defaults.Overwrite,
		"Replace the AllowedIPs value instead of appending to it")
	root.Flags().StringVar(&dnsServer, "dns-server", defaults.DNSServer,
		"DNS server to query instead of the system resolver")
	root.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")

	return root
}
