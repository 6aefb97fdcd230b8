package hh

// Area is one node of the region tree returned by /areas. The top level
// holds countries.
type Area struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Areas []Area `json:"areas,omitempty"`
}

// NamedRef is the {id, name} shape HH uses for area, employment and
// schedule references inside a vacancy.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EmployerRef is the employer block embedded in a vacancy item.
type EmployerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Salary is the salary block of a vacancy. Bounds are pointers because
// either may be null.
type Salary struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
	Gross    bool   `json:"gross"`
}

// Snippet holds the highlighted requirement/responsibility excerpts from a
// search result. They may contain <highlighttext> markup.
type Snippet struct {
	Requirement    string `json:"requirement"`
	Responsibility string `json:"responsibility"`
}

// VacancyItem is one entry of a /vacancies search page.
type VacancyItem struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Area         *NamedRef    `json:"area"`
	Employer     *EmployerRef `json:"employer"`
	PublishedAt  string       `json:"published_at"`
	AlternateURL string       `json:"alternate_url"`
	Employment   *NamedRef    `json:"employment"`
	Schedule     *NamedRef    `json:"schedule"`
	Salary       *Salary      `json:"salary"`
	Snippet      *Snippet     `json:"snippet"`
}

// VacanciesPage is one page of a /vacancies response.
type VacanciesPage struct {
	Items   []VacancyItem `json:"items"`
	Found   int           `json:"found"`
	Pages   int           `json:"pages"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// EmployerProfile is the /employers/{id} response. The open-vacancy count
// has appeared under three different field names across API versions.
type EmployerProfile struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SiteURL         string    `json:"site_url"`
	Description     string    `json:"description"`
	LogoURL         string    `json:"logo_url"`
	Contacts        *Contacts `json:"contacts"`
	OpenVacancies   *int      `json:"open_vacancies"`
	ActiveVacancies *int      `json:"active_vacancies"`
	VacanciesCount  *int      `json:"vacancies_count"`
}

// Contacts holds employer contact data.
type Contacts struct {
	Phones []Phone `json:"phones"`
}

// Phone is one contact phone entry.
type Phone struct {
	Number string `json:"number"`
}

// FirstPhone returns the first contact phone number, or "".
func (p *EmployerProfile) FirstPhone() string {
	if p == nil || p.Contacts == nil || len(p.Contacts.Phones) == 0 {
		return ""
	}
	return p.Contacts.Phones[0].Number
}
