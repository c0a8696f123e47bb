package resolver

import "github.com/okian/shares/pkg/logger"

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithProviderBaseURL sets the scheme and host of the data provider.
func WithProviderBaseURL(base string) Option {
	return func(r *Resolver) {
		if base != "" {
			r.providerURL = base
		}
	}
}

// WithUserAgent sets the identifying header sent with every request.
func WithUserAgent(ua string) Option {
	return func(r *Resolver) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
