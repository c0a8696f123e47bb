package service

import (
	"fmt"

	"github.com/okian/shares/internal/adapters/relay"
	"github.com/okian/shares/internal/config"
	"github.com/okian/shares/internal/presenter"
	"github.com/okian/shares/internal/resolver"
)

// FromConfig builds the relay, resolver and presenter described by cfg and
// returns a Service on top of them. The logger must be initialized.
func FromConfig(cfg *config.Config) (*Service, error) {
	fetcher := relay.New(
		relay.WithBaseURL(cfg.RelayBaseURL),
		relay.WithTimeout(cfg.HTTPTimeout()),
	)
	res := resolver.New(fetcher,
		resolver.WithProviderBaseURL(cfg.ProviderBaseURL),
		resolver.WithUserAgent(cfg.UserAgent),
	)
	p, err := presenter.New(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("build presenter: %w", err)
	}
	return New(res, p, WithDefaultCIK(cfg.DefaultCIK)), nil
}
