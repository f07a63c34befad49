package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/timmy/reconlens/internal/api/middleware"
	"github.com/timmy/reconlens/internal/domain"
	"github.com/timmy/reconlens/internal/gallery"
	"github.com/timmy/reconlens/internal/service"
	"github.com/timmy/reconlens/internal/sitedir"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 200
)

// RunLister reads the acquisition ledger. *repository.RunRepository implements it.
type RunLister interface {
	ListBySite(ctx context.Context, slug string, limit int) ([]domain.AcquisitionRun, error)
	ListByBatch(ctx context.Context, batchID string) ([]domain.AcquisitionRun, error)
	CountByStatus(ctx context.Context, batchID string) (map[domain.RunStatus]int64, error)
}

// SiteHandler serves site galleries and curation.
type SiteHandler struct {
	catalog   domain.Catalog
	root      string
	curator   *service.Curator
	runs      RunLister          // nil when the ledger is disabled
	publisher *service.Publisher // nil when publishing is disabled
}

// SiteHandlerConfig holds the collaborators of a SiteHandler.
type SiteHandlerConfig struct {
	Catalog   domain.Catalog
	Root      string
	Curator   *service.Curator
	Runs      RunLister
	Publisher *service.Publisher
}

// NewSiteHandler creates a new site handler.
// Parameters:
//   - cfg: catalog, output root and optional collaborators.
//
// Returns:
//   - *SiteHandler: initialized handler.
func NewSiteHandler(cfg SiteHandlerConfig) *SiteHandler {
	curator := cfg.Curator
	if curator == nil {
		curator = service.NewCurator(nil)
	}
	return &SiteHandler{
		catalog:   cfg.Catalog,
		root:      cfg.Root,
		curator:   curator,
		runs:      cfg.Runs,
		publisher: cfg.Publisher,
	}
}

// SiteSummary is one site with its current gallery size.
type SiteSummary struct {
	domain.Site
	Count int `json:"count"`
}

// SiteDetail is a site summary plus its latest run report.
type SiteDetail struct {
	SiteSummary
	Report *domain.RunReport `json:"report,omitempty"`
}

// CurateRequest represents the curate API request.
type CurateRequest struct {
	Remove string `json:"remove" binding:"required"`
}

// CurateResponse represents the curate API response.
type CurateResponse struct {
	Site    string                 `json:"site"`
	Removed int                    `json:"removed"`
	Missing int                    `json:"missing"`
	Count   int                    `json:"count"`
	Records []domain.CaptionRecord `json:"records"`
}

// ListSites handles GET /api/v1/sites.
func (h *SiteHandler) ListSites(c *gin.Context) {
	sites := h.catalog.Sites()
	out := make([]SiteSummary, 0, len(sites))
	for _, s := range sites {
		count, err := h.count(s.Slug)
		if err != nil {
			middleware.GetLogger(c).WithError(err).WithField("site", s.Slug).Warn("Unreadable manifest")
		}
		out = append(out, SiteSummary{Site: s, Count: count})
	}
	c.JSON(http.StatusOK, gin.H{
		"sites": out,
		"total": len(out),
	})
}

// GetSite handles GET /api/v1/sites/:slug.
func (h *SiteHandler) GetSite(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}
	count, err := h.count(site.Slug)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read manifest: " + err.Error()})
		return
	}

	detail := SiteDetail{SiteSummary: SiteSummary{Site: site, Count: count}}
	if report, err := sitedir.Open(h.root, site.Slug).ReadReport(); err == nil {
		detail.Report = &report
	}
	c.JSON(http.StatusOK, detail)
}

// GetCaptions handles GET /api/v1/sites/:slug/captions.
func (h *SiteHandler) GetCaptions(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}
	records, err := sitedir.Open(h.root, site.Slug).ReadCaptions()
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Curate handles POST /api/v1/sites/:slug/curate.
func (h *SiteHandler) Curate(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}

	var req CurateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	remove, err := service.ParseIndices(req.Remove)
	if err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.curator.Curate(ctx, h.root, site, remove)
	if err != nil {
		writeError(c, err)
		return
	}

	log := middleware.GetLogger(c)
	if _, err := gallery.BuildIndex(h.root, h.catalog.Sites()); err != nil {
		log.WithError(err).Warn("Failed to rebuild gallery index")
	}
	if h.publisher != nil {
		if _, err := h.publisher.PublishSite(ctx, h.root, site.Slug); err != nil {
			log.WithError(err).Warn("Publish failed")
		}
	}

	c.JSON(http.StatusOK, CurateResponse{
		Site:    site.Slug,
		Removed: result.Removed,
		Missing: result.Missing,
		Count:   len(result.Records),
		Records: result.Records,
	})
}

// ListRuns handles GET /api/v1/sites/:slug/runs.
func (h *SiteHandler) ListRuns(c *gin.Context) {
	site, ok := h.lookup(c)
	if !ok {
		return
	}
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run ledger is disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRunLimit)))
	if limit <= 0 || limit > maxRunLimit {
		limit = defaultRunLimit
	}
	runs, err := h.runs.ListBySite(c.Request.Context(), site.Slug, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"site": site.Slug,
		"runs": runs,
	})
}

// ListBatch handles GET /api/v1/runs/:batch.
func (h *SiteHandler) ListBatch(c *gin.Context) {
	if h.runs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run ledger is disabled"})
		return
	}

	ctx := c.Request.Context()
	batchID := c.Param("batch")
	runs, err := h.runs.ListByBatch(ctx, batchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list runs: " + err.Error()})
		return
	}
	if len(runs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown batch: " + batchID})
		return
	}
	counts, err := h.runs.CountByStatus(ctx, batchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count runs: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"batch":  batchID,
		"counts": counts,
		"runs":   runs,
	})
}

func (h *SiteHandler) lookup(c *gin.Context) (domain.Site, bool) {
	site, err := h.catalog.Lookup(c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return domain.Site{}, false
	}
	return site, true
}

// count returns the manifest size of a site; a missing manifest counts as zero.
func (h *SiteHandler) count(slug string) (int, error) {
	records, err := sitedir.Open(h.root, slug).ReadCaptions()
	if errors.Is(err, domain.ErrManifestNotFound) {
		return 0, nil
	}
	return len(records), err
}

// writeError maps domain errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownSite), errors.Is(err, domain.ErrManifestNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidIndexSpec):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
