package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	service "github.com/okian/shares/internal/app"
	"github.com/okian/shares/internal/config"
	"github.com/okian/shares/internal/domain/cik"
	"github.com/okian/shares/internal/presenter"
	"github.com/okian/shares/internal/resolver"
	"github.com/okian/shares/pkg/logger"
	"github.com/spf13/cobra"
)

// ErrUnresolved is returned when neither the requested nor the default CIK resolved.
var ErrUnresolved = errors.New("no shares data resolved")

type resolveFlags struct {
	cik     string
	json    bool
	locale  string
	relay   string
	direct  bool
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "sharesctl",
		Short:        "Look up shares outstanding reported to the SEC",
		SilenceUsage: true,
	}
	root.AddCommand(newResolveCmd(), newURLCmd())
	return root
}

func newResolveCmd() *cobra.Command {
	var f resolveFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the largest and smallest shares outstanding after FY2020",
		Long: `Resolve one CIK exactly like a page load of the server.

An invalid or missing --cik selects the configured default. A valid CIK that
cannot be resolved is retried once with the default. The command exits non-zero
only when nothing could be rendered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.cik, "cik", "", "ten-digit CIK to resolve")
	cmd.Flags().BoolVar(&f.json, "json", false, "print the page load report as JSON")
	cmd.Flags().StringVar(&f.locale, "locale", "", "locale for number formatting (default from config)")
	cmd.Flags().StringVar(&f.relay, "relay", "", "relay base URL (default from config)")
	cmd.Flags().BoolVar(&f.direct, "direct", false, "request the provider without a relay")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "upstream request timeout (default from config)")
	return cmd
}

func newURLCmd() *cobra.Command {
	var f resolveFlags
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the provider URL a resolve would request for a CIK",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			id, _ := cik.Choose(f.cik, cfg.DefaultCIK)
			r := resolver.New(nil, resolver.WithProviderBaseURL(cfg.ProviderBaseURL))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), r.ConceptURL(id))
			return err
		},
	}
	cmd.Flags().StringVar(&f.cik, "cik", "", "ten-digit CIK")
	return cmd
}

// loadConfig layers the command flags over the loaded configuration and
// sends logs to stderr so stdout stays machine readable.
func loadConfig(cmd *cobra.Command, f resolveFlags) (*config.Config, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = f.locale
	}
	if flags.Changed("relay") {
		cfg.RelayBaseURL = f.relay
	}
	if f.direct {
		cfg.RelayBaseURL = ""
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeoutMS = int(f.timeout / time.Millisecond)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(cmd.ErrOrStderr())); err != nil {
		return nil, err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	return cfg, nil
}

func runResolve(cmd *cobra.Command, f resolveFlags) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	svc, err := service.FromConfig(cfg)
	if err != nil {
		return err
	}

	page := presenter.NewPage()
	rep := svc.Run(cmd.Context(), f.cik, page)

	out := cmd.OutOrStdout()
	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else if _, err := page.WriteTo(out); err != nil {
		return err
	}

	if rep.Final() == nil {
		return ErrUnresolved
	}
	return nil
}
