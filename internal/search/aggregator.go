package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/semizhon/hh-kz-cad/internal/cleaner"
	"github.com/semizhon/hh-kz-cad/internal/domain"
	"github.com/semizhon/hh-kz-cad/internal/enrich"
	"github.com/semizhon/hh-kz-cad/internal/hh"
)

const orderByPublication = "publication_time"

// Params control one aggregation run.
type Params struct {
	Keywords []string
	Country  string
	PerPage  int
	Pages    int
	Products []string
}

// Aggregator runs the multi-keyword paginated search against HH, merging,
// deduplicating and enriching results. Upstream calls are issued strictly
// sequentially; a page failure abandons only that keyword's remaining pages.
type Aggregator struct {
	client   *hh.Client
	enricher *enrich.Enricher
	cleaner  *cleaner.Cleaner
	log      *zap.SugaredLogger
}

// New creates an aggregator.
func New(client *hh.Client, enricher *enrich.Enricher, clean *cleaner.Cleaner, log *zap.SugaredLogger) *Aggregator {
	return &Aggregator{
		client:   client,
		enricher: enricher,
		cleaner:  clean,
		log:      log,
	}
}

// Search resolves the country, searches each normalized keyword through up
// to Pages pages, and returns the merged result sorted by publication time,
// newest first. Fails only when the country cannot be resolved; everything
// past that point degrades per keyword or per company.
func (a *Aggregator) Search(ctx context.Context, p Params) ([]*domain.Listing, error) {
	areaID, err := a.enricher.ResolveArea(ctx, p.Country)
	if err != nil {
		return nil, err
	}

	keywords := NormalizeKeywords(p.Keywords)
	a.log.Infow("starting search", "country", p.Country, "area_id", areaID, "keywords", keywords)

	run := &searchRun{
		seen:     make(map[string]struct{}),
		stats:    make(map[string]*domain.CompanyStats),
		products: p.Products,
		results:  make([]*domain.Listing, 0),
	}

	for _, kw := range keywords {
		for page := 0; page < p.Pages; page++ {
			pageData, err := a.client.Vacancies(ctx, hh.VacancyParams{
				Text:    kw,
				AreaID:  areaID,
				PerPage: p.PerPage,
				Page:    page,
				OrderBy: orderByPublication,
			})
			if err != nil {
				// Failure isolation boundary: this keyword is done,
				// the others continue unaffected.
				a.log.Warnw("vacancy page failed", "keyword", kw, "page", page, "error", err)
				break
			}

			if len(pageData.Items) == 0 {
				break
			}
			for i := range pageData.Items {
				a.collect(ctx, run, &pageData.Items[i], kw)
			}
			if len(pageData.Items) < p.PerPage {
				break
			}
		}
	}

	// Every listing of a company reports that company's final match count
	// for the run.
	for _, listing := range run.results {
		if st, ok := run.stats[statsKey(listing.CompanyID, listing.Company)]; ok {
			listing.MatchedVacancies = st.Matched
		}
	}

	// Stable descending sort by publication timestamp string; empty sorts
	// last, ties keep input order.
	sort.SliceStable(run.results, func(i, j int) bool {
		return run.results[i].PublishedAt > run.results[j].PublishedAt
	})

	a.log.Infow("search complete", "count", len(run.results))
	return run.results, nil
}

type searchRun struct {
	seen     map[string]struct{}
	stats    map[string]*domain.CompanyStats
	products []string
	results  []*domain.Listing
}

// collect processes one search item: run-scoped dedup, company accumulation,
// product filter, detection, listing construction.
func (a *Aggregator) collect(ctx context.Context, run *searchRun, item *hh.VacancyItem, keyword string) {
	if _, ok := run.seen[item.ID]; ok {
		return
	}
	run.seen[item.ID] = struct{}{}

	var employerID, companyName string
	if item.Employer != nil {
		employerID = item.Employer.ID
		companyName = item.Employer.Name
	}

	key := statsKey(employerID, companyName)
	st, ok := run.stats[key]
	if !ok {
		profile, _ := a.enricher.EmployerDetails(ctx, employerID)
		st = &domain.CompanyStats{
			EmployerID:     employerID,
			TotalVacancies: a.enricher.OpenVacancyCount(ctx, employerID),
			Phone:          profile.FirstPhone(),
			Website:        profile.SiteURL,
			Description:    profile.Description,
			Logo:           profile.LogoURL,
		}
		run.stats[key] = st
	}
	st.Matched++

	var requirement, responsibility string
	if item.Snippet != nil {
		requirement = a.cleaner.Text(item.Snippet.Requirement)
		responsibility = a.cleaner.Text(item.Snippet.Responsibility)
	}
	textLower := strings.ToLower(fmt.Sprintf("%s %s %s", item.Name, requirement, responsibility))

	// The product filter runs before detection and independently of it: a
	// listing can be excluded even though its mentioned-products field
	// would have been populated.
	if len(run.products) > 0 && !MatchesAny(textLower, run.products) {
		return
	}

	run.results = append(run.results, &domain.Listing{
		ID:                    item.ID,
		Title:                 item.Name,
		Company:               companyName,
		CompanyID:             employerID,
		City:                  refName(item.Area),
		PublishedAt:           item.PublishedAt,
		URL:                   item.AlternateURL,
		Employment:            refName(item.Employment),
		Schedule:              refName(item.Schedule),
		SalaryRaw:             toDomainSalary(item.Salary),
		Salary:                FormatSalary(toDomainSalary(item.Salary)),
		SnippetRequirement:    requirement,
		SnippetResponsibility: responsibility,
		SourceKeyword:         keyword,
		MentionedProducts:     DetectProducts(textLower, keyword),
		CompanyPhone:          st.Phone,
		CompanyWebsite:        st.Website,
		CompanyDescription:    st.Description,
		CompanyLogo:           st.Logo,
		TotalVacancies:        st.TotalVacancies,
	})
}

// statsKey keys company accumulation by employer ID, falling back to the
// display name only when the posting carries no ID.
func statsKey(employerID, companyName string) string {
	if employerID != "" {
		return employerID
	}
	return companyName
}

func refName(ref *hh.NamedRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func toDomainSalary(s *hh.Salary) *domain.Salary {
	if s == nil {
		return nil
	}
	return &domain.Salary{From: s.From, To: s.To, Currency: s.Currency, Gross: s.Gross}
}
