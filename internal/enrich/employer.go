package enrich

import (
	"context"

	"github.com/semizhon/hh-kz-cad/internal/cache"
	"github.com/semizhon/hh-kz-cad/internal/hh"
)

// EmployerDetails fetches an employer profile, memoized for an hour. The
// second return value is false when the profile is an empty placeholder
// (no employer ID, or the upstream call failed). Enrichment failures never
// abort a search; the caller proceeds with the empty profile.
func (e *Enricher) EmployerDetails(ctx context.Context, employerID string) (*hh.EmployerProfile, bool) {
	if employerID == "" {
		return &hh.EmployerProfile{}, false
	}

	key := "employer:" + employerID
	var cached hh.EmployerProfile
	if cache.GetJSON(ctx, e.store, key, &cached) {
		return &cached, true
	}

	profile, err := e.client.Employer(ctx, employerID)
	if err != nil {
		return &hh.EmployerProfile{}, false
	}
	cache.SetJSON(ctx, e.store, key, profile, employerTTL)
	return profile, true
}

// OpenVacancyCount returns the employer's open-vacancy count, checking the
// three field names the API has used over time, in priority order. Returns 0
// when the employer ID is absent or no field is present.
func (e *Enricher) OpenVacancyCount(ctx context.Context, employerID string) int {
	if employerID == "" {
		return 0
	}
	profile, _ := e.EmployerDetails(ctx, employerID)
	for _, n := range []*int{profile.OpenVacancies, profile.ActiveVacancies, profile.VacanciesCount} {
		if n != nil {
			return *n
		}
	}
	return 0
}
