package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"

	"github.com/semizhon/hh-kz-cad/internal/domain"
)

// Elasticsearch archives listings to an ES index.
type Elasticsearch struct {
	client    *elasticsearch.Client
	indexName string
	log       *zap.SugaredLogger
}

// NewElasticsearch creates an ES archiver and verifies the connection.
func NewElasticsearch(addresses []string, indexName string, log *zap.SugaredLogger) (*Elasticsearch, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: addresses})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &Elasticsearch{client: client, indexName: indexName, log: log}, nil
}

// BulkIndex upserts listings into the index by listing ID.
func (e *Elasticsearch) BulkIndex(ctx context.Context, listings []*domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, listing := range listings {
		meta := map[string]any{
			"index": map[string]any{
				"_index": e.indexName,
				"_id":    listing.ID,
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(listing)
		if err != nil {
			e.log.Warnw("marshal listing", "id", listing.ID, "error", err)
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := e.client.Bulk(bytes.NewReader(buf.Bytes()), e.client.Bulk.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return fmt.Errorf("parse bulk response: %w", err)
	}
	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				e.log.Warnw("bulk index error",
					"id", item.Index.ID,
					"type", item.Index.Error.Type,
					"reason", item.Index.Error.Reason)
			}
		}
	}
	return nil
}

// EnsureIndex creates the index with a Russian-text-friendly mapping if it
// does not exist yet.
func (e *Elasticsearch) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists([]string{e.indexName})
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	mapping := `{
		"settings": {
			"analysis": {
				"analyzer": {
					"listing_analyzer": {
						"type": "custom",
						"tokenizer": "standard",
						"filter": ["lowercase", "asciifolding"]
					}
				}
			}
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"title": {
					"type": "text",
					"analyzer": "listing_analyzer",
					"fields": {"keyword": {"type": "keyword"}}
				},
				"company": {"type": "text", "analyzer": "listing_analyzer"},
				"company_id": {"type": "keyword"},
				"city": {"type": "keyword"},
				"published_at": {"type": "date"},
				"url": {"type": "keyword"},
				"employment": {"type": "keyword"},
				"schedule": {"type": "keyword"},
				"salary": {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
				"snippet_requirement": {"type": "text", "analyzer": "listing_analyzer"},
				"snippet_responsibility": {"type": "text", "analyzer": "listing_analyzer"},
				"source_keyword": {"type": "keyword"},
				"mentioned_products": {"type": "keyword"},
				"company_phone": {"type": "keyword"},
				"company_website": {"type": "keyword"},
				"company_description": {"type": "text", "analyzer": "listing_analyzer"},
				"total_vacancies": {"type": "integer"},
				"matched_vacancies": {"type": "integer"}
			}
		}
	}`

	res, err = e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithBody(bytes.NewReader([]byte(mapping))),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}
	return nil
}
