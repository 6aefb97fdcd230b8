package enrich

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/semizhon/hh-kz-cad/internal/cache"
	"github.com/semizhon/hh-kz-cad/internal/hh"
)

// ErrCountryNotFound means the requested country matched nothing in the HH
// area tree. Fatal for the whole search.
var ErrCountryNotFound = errors.New("country not found in HH areas")

const (
	areasCacheKey = "areas_tree"
	areaTTL       = time.Hour
	employerTTL   = time.Hour
)

// countryAliases maps lowercase English country names to their native
// spellings, ISO codes and known HH numeric area IDs.
var countryAliases = map[string][]string{
	"kazakhstan":   {"казахстан", "kz", "40"},
	"russia":       {"россия", "рф", "ru", "1"},
	"ukraine":      {"украина", "ua", "5"},
	"belarus":      {"беларусь", "by", "16"},
	"uzbekistan":   {"узбекистан", "uz", "97"},
	"kyrgyzstan":   {"кыргызстан", "kg", "48"},
	"tajikistan":   {"таджикистан", "tj", "86"},
	"turkmenistan": {"туркменистан", "tm", "87"},
	"azerbaijan":   {"азербайджан", "az", "9"},
	"georgia":      {"грузия", "ge", "28"},
	"armenia":      {"армения", "am", "6"},
	"moldova":      {"молдова", "md", "50"},
}

// Enricher resolves countries to area IDs and fetches employer profiles,
// memoizing both through the injected cache store.
type Enricher struct {
	client *hh.Client
	store  cache.Store
}

// New creates an enricher backed by the given HH client and cache.
func New(client *hh.Client, store cache.Store) *Enricher {
	return &Enricher{client: client, store: store}
}

// ResolveArea maps a country name to its HH area ID. The full area tree is
// fetched once per hour; matching is case-insensitive against the alias
// table and the tree itself. An upstream failure here propagates: without an
// area ID no search can run.
func (e *Enricher) ResolveArea(ctx context.Context, country string) (string, error) {
	var tree []hh.Area
	if !cache.GetJSON(ctx, e.store, areasCacheKey, &tree) {
		fetched, err := e.client.Areas(ctx)
		if err != nil {
			return "", fmt.Errorf("fetch areas: %w", err)
		}
		tree = fetched
		cache.SetJSON(ctx, e.store, areasCacheKey, tree, areaTTL)
	}

	terms := []string{strings.ToLower(country)}
	terms = append(terms, countryAliases[strings.ToLower(country)]...)

	for _, node := range tree {
		name := strings.ToLower(node.Name)
		if slices.Contains(terms, name) || slices.Contains(terms, node.ID) {
			return node.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrCountryNotFound, country)
}
