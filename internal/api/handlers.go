package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"ingatlan/agent/internal/models"
	"ingatlan/agent/internal/registry"
	"ingatlan/agent/internal/report"
)

// Handler serves read-only views of a fully loaded registry
type Handler struct {
	registry   *registry.Registry
	logger     *logrus.Logger
	reportCity string
}

func NewHandler(reg *registry.Registry, reportCity string, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		registry:   reg,
		logger:     logger,
		reportCity: reportCity,
	}
}

func (h *Handler) GetAllListings(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewListingViews(h.registry.All()))
}

func (h *Handler) GetListing(c *gin.Context) {
	listing, ok := h.findListing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewListingView(listing))
}

// GetSameValuation returns the other listings priced the same as :id
func (h *Handler) GetSameValuation(c *gin.Context) {
	listing, ok := h.findListing(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewListingViews(h.registry.MatchingValuation(listing)))
}

func (h *Handler) GetStats(c *gin.Context) {
	city := c.DefaultQuery("city", h.reportCity)
	c.JSON(http.StatusOK, report.Build(h.registry, city))
}

func (h *Handler) GetCondominiumsBelowAverage(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewListingViews(h.registry.CondominiumsBelowAverage()))
}

func (h *Handler) findListing(c *gin.Context) (models.Listing, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.logger.WithError(err).WithField("id", c.Param("id")).Debug("Invalid listing id")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return nil, false
	}

	listing := h.registry.Find(id)
	if listing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return nil, false
	}
	return listing, true
}
