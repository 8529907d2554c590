package handlers

import (
	"context"
	"sort"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"track-catalog/database"
	"track-catalog/matching"
	"track-catalog/models"
)

// catalogStore is the database surface the handlers need.
type catalogStore interface {
	SearchMachines(ctx context.Context, query string) ([]models.Machine, error)
	SearchTrackSizes(ctx context.Context, query string) ([]models.TrackSize, error)
	SearchPartNumbers(ctx context.Context, query string) ([]models.PartNumber, error)
	GetTrackSizesForMachine(ctx context.Context, make, model string) ([]models.TrackSize, error)
	Brands() *matching.BrandResolver
}

// CatalogHandler handles HTTP requests for catalog search endpoints
type CatalogHandler struct {
	store catalogStore
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(store *database.CatalogService) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// newCatalogHandler wires any catalogStore. Used by tests.
func newCatalogHandler(store catalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// HealthHandler handles health check requests
func (h *CatalogHandler) HealthHandler(c *gin.Context) {
	response := models.HealthResponse{
		Status:  "healthy",
		Message: "Track catalog service is running",
		Service: "track-catalog",
	}
	c.JSON(200, response)
}

// BrandsHandler returns the canonical brands and their known aliases.
func (h *CatalogHandler) BrandsHandler(c *gin.Context) {
	resolver := h.store.Brands()

	var brands []models.BrandInfo
	for _, name := range resolver.Canonicals() {
		variations := resolver.Variations(name)
		aliases := make([]string, 0, len(variations))
		for v := range variations {
			aliases = append(aliases, v)
		}
		sort.Strings(aliases)
		brands = append(brands, models.BrandInfo{Name: name, Aliases: aliases})
	}

	c.JSON(200, models.BrandsResponse{Brands: brands, Count: len(brands)})
}

// SearchMachinesHandler handles machine search requests. An empty q returns
// the whole catalog.
func (h *CatalogHandler) SearchMachinesHandler(c *gin.Context) {
	query := c.Query("q")

	machines, err := h.store.SearchMachines(c.Request.Context(), query)
	if err != nil {
		log.Errorf("Error searching machines for %q: %v", query, err)
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	if machines == nil {
		machines = []models.Machine{}
	}

	c.JSON(200, models.MachinesResponse{
		Machines: machines,
		Count:    len(machines),
		Query:    query,
	})
}

// SearchTrackSizesHandler handles track size search requests.
func (h *CatalogHandler) SearchTrackSizesHandler(c *gin.Context) {
	query := c.Query("q")

	sizes, err := h.store.SearchTrackSizes(c.Request.Context(), query)
	if err != nil {
		log.Errorf("Error searching track sizes for %q: %v", query, err)
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	if sizes == nil {
		sizes = []models.TrackSize{}
	}

	c.JSON(200, models.TrackSizesResponse{
		TrackSizes: sizes,
		Count:      len(sizes),
		Query:      query,
	})
}

// SearchPartNumbersHandler handles part number search requests.
func (h *CatalogHandler) SearchPartNumbersHandler(c *gin.Context) {
	query := c.Query("q")

	parts, err := h.store.SearchPartNumbers(c.Request.Context(), query)
	if err != nil {
		log.Errorf("Error searching part numbers for %q: %v", query, err)
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	if parts == nil {
		parts = []models.PartNumber{}
	}

	c.JSON(200, models.PartNumbersResponse{
		Parts: parts,
		Count: len(parts),
		Query: query,
	})
}

// MachineTracksHandler returns the track sizes compatible with one machine.
func (h *CatalogHandler) MachineTracksHandler(c *gin.Context) {
	machineMake := c.Param("make")
	machineModel := c.Param("model")

	if machineMake == "" || machineModel == "" {
		c.JSON(400, gin.H{"error": "make and model are required"})
		return
	}

	sizes, err := h.store.GetTrackSizesForMachine(c.Request.Context(), machineMake, machineModel)
	if err != nil {
		log.Errorf("Error getting track sizes for %s %s: %v", machineMake, machineModel, err)
		c.JSON(500, gin.H{"error": "Internal server error"})
		return
	}
	if sizes == nil {
		sizes = []models.TrackSize{}
	}

	c.JSON(200, models.CompatibilityResponse{
		Make:       h.store.Brands().Resolve(machineMake),
		Model:      machineModel,
		TrackSizes: sizes,
		Count:      len(sizes),
	})
}
