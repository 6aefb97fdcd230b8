package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/semizhon/hh-kz-cad/internal/archive"
	"github.com/semizhon/hh-kz-cad/internal/cache"
	"github.com/semizhon/hh-kz-cad/internal/domain"
	"github.com/semizhon/hh-kz-cad/internal/search"
	"github.com/semizhon/hh-kz-cad/internal/snapshot"
)

const (
	defaultCountry = "Kazakhstan"
	defaultPages   = 1
	defaultPerPage = 100
	resultSource   = "api.hh.ru"

	// short-lived query tier; prevents duplicate upstream work within a
	// couple of minutes
	queryCacheTTL = 2 * time.Minute
)

var defaultKeywords = []string{"AutoCAD,Revit,Inventor,Fusion 360,Fusion,Advance Steel"}

// Handler serves the HTTP surface: the jobs query endpoint, the static page
// and the health check.
type Handler struct {
	aggregator *search.Aggregator
	store      cache.Store
	snapshots  *snapshot.Store
	archiver   archive.Archiver // nil when archiving is disabled
	log        *zap.SugaredLogger
}

// NewHandler creates a handler. archiver may be nil.
func NewHandler(
	aggregator *search.Aggregator,
	store cache.Store,
	snapshots *snapshot.Store,
	archiver archive.Archiver,
	log *zap.SugaredLogger,
) *Handler {
	return &Handler{
		aggregator: aggregator,
		store:      store,
		snapshots:  snapshots,
		archiver:   archiver,
		log:        log,
	}
}

// Jobs handles GET /jobs. Control flow: today's snapshot wins for every
// parameter combination; then the short-lived query cache; then a fresh
// aggregation that populates both tiers on full success.
func (h *Handler) Jobs(c *gin.Context) {
	if snap, ok := h.snapshots.ReadIfFresh(); ok && snap.Payload != nil {
		c.JSON(http.StatusOK, snap.Payload)
		return
	}

	query := parseQuery(c)
	ctx := c.Request.Context()

	key := queryCacheKey(query)
	var cached domain.Result
	if cache.GetJSON(ctx, h.store, key, &cached) {
		c.JSON(http.StatusOK, &cached)
		return
	}

	items, err := h.aggregator.Search(ctx, search.Params{
		Keywords: query.Keywords,
		Country:  query.Country,
		PerPage:  query.PerPage,
		Pages:    query.Pages,
		Products: query.Products,
	})
	if err != nil {
		h.log.Errorw("aggregation failed", "country", query.Country, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	payload := &domain.Result{
		Query:  query,
		Count:  len(items),
		Items:  items,
		Source: resultSource,
	}

	cache.SetJSON(ctx, h.store, key, payload, queryCacheTTL)
	if err := h.snapshots.Write(payload, query); err != nil {
		h.log.Warnw("snapshot write failed", "error", err)
	}
	if h.archiver != nil {
		if err := h.archiver.BulkIndex(ctx, items); err != nil {
			h.log.Warnw("archive failed", "error", err)
		}
	}

	c.JSON(http.StatusOK, payload)
}

// Index serves the static web interface.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

// Health handles health check requests.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseQuery(c *gin.Context) domain.Query {
	keywords := c.QueryArray("keywords")
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}

	return domain.Query{
		Keywords: keywords,
		Country:  c.DefaultQuery("country", defaultCountry),
		Pages:    queryInt(c, "pages", defaultPages),
		PerPage:  queryInt(c, "per_page", defaultPerPage),
		Products: c.QueryArray("products"),
	}
}

func queryInt(c *gin.Context, name string, defaultVal int) int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return defaultVal
}

func queryCacheKey(q domain.Query) string {
	return "jobs:" + q.Country +
		":" + strings.Join(q.Keywords, ",") +
		":" + strconv.Itoa(q.Pages) +
		":" + strconv.Itoa(q.PerPage) +
		":" + strings.Join(q.Products, ",")
}
