// Package resolver turns a CIK into the shares-outstanding summary for that company.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/shares/internal/adapters/relay"
	"github.com/okian/shares/internal/domain/shares"
	"github.com/okian/shares/pkg/logger"
	"github.com/okian/shares/pkg/metrics"
)

// Provider defaults.
const (
	DefaultProviderBaseURL = "https://data.sec.gov"

	conceptPath = "/api/xbrl/companyconcept/CIK%s/dei/EntityCommonStockSharesOutstanding.json"
)

// Resolver fetches and summarizes one company concept per call.
type Resolver struct {
	fetcher     relay.Fetcher
	providerURL string
	userAgent   string
	logger      logger.Logger
}

// New creates a Resolver on top of fetcher.
func New(fetcher relay.Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:     fetcher,
		providerURL: DefaultProviderBaseURL,
		userAgent:   relay.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Named("resolver")
	}
	return r
}

// ConceptURL returns the provider address of the shares-outstanding concept for id.
func (r *Resolver) ConceptURL(id string) string {
	return strings.TrimRight(r.providerURL, "/") + fmt.Sprintf(conceptPath, id)
}

// Resolve fetches the concept for id and reduces it. Every failure is returned
// as a *Failure; no partial result is ever returned alongside an error.
func (r *Resolver) Resolve(ctx context.Context, id string) (shares.Result, error) {
	res, err := r.resolve(ctx, id)
	if err != nil {
		var f *Failure
		if !errors.As(err, &f) {
			f = &Failure{Kind: KindTransport, CIK: id, Err: err}
		}
		r.logger.Warn(ctx, "resolution failed",
			logger.String("cik", id),
			logger.String("kind", string(f.Kind)),
			logger.Error(f.Err),
		)
		metrics.RecordResolution("failure", string(f.Kind))
		return shares.Result{}, f
	}

	r.logger.Debug(ctx, "resolved",
		logger.String("cik", id),
		logger.String("entity", res.EntityName),
		logger.Float64("max", res.Max.Value),
		logger.Float64("min", res.Min.Value),
	)
	metrics.RecordResolution("success", "")
	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, id string) (shares.Result, error) {
	headers := http.Header{}
	headers.Set("User-Agent", r.userAgent)

	body, err := r.fetcher.FetchJSON(ctx, r.ConceptURL(id), headers)
	if err != nil {
		kind := KindTransport
		if errors.Is(err, relay.ErrHTTPStatus) {
			kind = KindHTTP
		}
		return shares.Result{}, &Failure{Kind: kind, CIK: id, Err: err}
	}

	var concept shares.Concept
	if err := json.Unmarshal(body, &concept); err != nil {
		return shares.Result{}, &Failure{Kind: KindParse, CIK: id, Err: err}
	}

	res, err := shares.Summarize(concept)
	if err != nil {
		return shares.Result{}, &Failure{Kind: KindNoData, CIK: id, Err: err}
	}
	return res, nil
}
