package soil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// --------------------------------------------------
// List regions (state picker)
// --------------------------------------------------
func (h *Handler) ListRegions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"regions": h.store.Regions()})
}

// --------------------------------------------------
// List districts of one region
// --------------------------------------------------
func (h *Handler) ListDistricts(c *gin.Context) {
	region := c.Param("region")

	districts, ok := h.store.Districts(region)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "region not found"})
		return
	}

	type district struct {
		Name    string `json:"name"`
		Climate string `json:"climate,omitempty"`
	}
	out := make([]district, 0, len(districts))
	for _, d := range districts {
		out = append(out, district{Name: d.District, Climate: d.Climate})
	}

	c.JSON(http.StatusOK, gin.H{"region": region, "districts": out})
}
