package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/semizhon/hh-kz-cad/internal/domain"
)

// Postgres archives listings to a PostgreSQL table.
type Postgres struct {
	db        *sql.DB
	tableName string
	log       *zap.SugaredLogger
}

// NewPostgres creates a Postgres archiver and ensures the table exists.
func NewPostgres(connStr, tableName string, log *zap.SugaredLogger) (*Postgres, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	p := &Postgres{db: db, tableName: tableName, log: log}
	if err := p.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}
	return p, nil
}

func (p *Postgres) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			company TEXT,
			company_id TEXT,
			city TEXT,
			published_at TEXT,
			url TEXT,
			employment TEXT,
			schedule TEXT,
			salary TEXT,
			snippet_requirement TEXT,
			snippet_responsibility TEXT,
			source_keyword TEXT,
			mentioned_products TEXT[],
			company_phone TEXT,
			company_website TEXT,
			company_description TEXT,
			company_logo TEXT,
			total_vacancies INTEGER DEFAULT 0,
			matched_vacancies INTEGER DEFAULT 0,
			archived_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, p.tableName)

	_, err := p.db.Exec(query)
	return err
}

const upsertColumns = `
		id, title, company, company_id, city,
		published_at, url, employment, schedule, salary,
		snippet_requirement, snippet_responsibility, source_keyword, mentioned_products,
		company_phone, company_website, company_description, company_logo,
		total_vacancies, matched_vacancies, archived_at`

// BulkIndex upserts listings inside one transaction.
func (p *Postgres) BulkIndex(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17, $18,
			$19, $20, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			company_id = EXCLUDED.company_id,
			city = EXCLUDED.city,
			published_at = EXCLUDED.published_at,
			url = EXCLUDED.url,
			employment = EXCLUDED.employment,
			schedule = EXCLUDED.schedule,
			salary = EXCLUDED.salary,
			snippet_requirement = EXCLUDED.snippet_requirement,
			snippet_responsibility = EXCLUDED.snippet_responsibility,
			source_keyword = EXCLUDED.source_keyword,
			mentioned_products = EXCLUDED.mentioned_products,
			company_phone = EXCLUDED.company_phone,
			company_website = EXCLUDED.company_website,
			company_description = EXCLUDED.company_description,
			company_logo = EXCLUDED.company_logo,
			total_vacancies = EXCLUDED.total_vacancies,
			matched_vacancies = EXCLUDED.matched_vacancies,
			archived_at = NOW()
	`, p.tableName, upsertColumns)

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, l := range listings {
		salary := ""
		if l.Salary != nil {
			salary = *l.Salary
		}
		products := "{}"
		if len(l.MentionedProducts) > 0 {
			products = "{" + strings.Join(l.MentionedProducts, ",") + "}"
		}

		_, err := stmt.ExecContext(ctx,
			l.ID, l.Title, l.Company, l.CompanyID, l.City,
			l.PublishedAt, l.URL, l.Employment, l.Schedule, salary,
			l.SnippetRequirement, l.SnippetResponsibility, l.SourceKeyword, products,
			l.CompanyPhone, l.CompanyWebsite, l.CompanyDescription, l.CompanyLogo,
			l.TotalVacancies, l.MatchedVacancies,
		)
		if err != nil {
			p.log.Warnw("archive listing failed", "id", l.ID, "error", err)
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}
