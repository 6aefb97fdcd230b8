package domain

// Listing represents one aggregated job posting, enriched with company data
// and detected product mentions.
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	CompanyID   string  `json:"company_id"`
	City        string  `json:"city"`
	PublishedAt string  `json:"published_at"`
	URL         string  `json:"url"`
	Employment  string  `json:"employment"`
	Schedule    string  `json:"schedule"`
	SalaryRaw   *Salary `json:"salary_raw"`
	Salary      *string `json:"salary"`

	// Snippets come from the upstream search response with highlight
	// markup already stripped.
	SnippetRequirement    string `json:"snippet_requirement,omitempty"`
	SnippetResponsibility string `json:"snippet_responsibility,omitempty"`

	SourceKeyword     string   `json:"source_keyword"`
	MentionedProducts []string `json:"mentioned_products"`

	// Denormalized company fields, shared across all listings of the
	// same company within one search run.
	CompanyPhone       string `json:"company_phone"`
	CompanyWebsite     string `json:"company_website"`
	CompanyDescription string `json:"company_description"`
	CompanyLogo        string `json:"company_logo"`
	TotalVacancies     int    `json:"total_vacancies"`
	MatchedVacancies   int    `json:"matched_vacancies"`
}

// Salary is the raw salary block as reported upstream. Either bound may be
// absent.
type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
	Gross    bool   `json:"gross"`
}

// CompanyStats accumulates per-company data during a single search run.
// Keyed by employer ID, falling back to company name when the posting
// carries no employer ID.
type CompanyStats struct {
	EmployerID     string
	TotalVacancies int
	Matched        int
	Phone          string
	Website        string
	Description    string
	Logo           string
}

// Query echoes the request parameters that produced a result.
type Query struct {
	Keywords []string `json:"keywords"`
	Country  string   `json:"country"`
	Pages    int      `json:"pages"`
	PerPage  int      `json:"per_page"`
	Products []string `json:"products,omitempty"`
}

// Result is the payload served for a /jobs request and persisted in the
// daily snapshot.
type Result struct {
	Query  Query      `json:"query"`
	Count  int        `json:"count"`
	Items  []*Listing `json:"items"`
	Source string     `json:"source"`
}
