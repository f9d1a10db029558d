package recommend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Recommend (GET query or POST form/JSON)
// --------------------------------------------------
func (h *Handler) Recommend(c *gin.Context) {
	req := bindRequest(c)
	req.FarmerID = c.GetString("farmerID")

	c.JSON(http.StatusOK, h.service.Recommend(c.Request.Context(), req))
}

// bindRequest never rejects input: unreadable fields count as absent.
func bindRequest(c *gin.Context) Request {
	if c.Request.Method == http.MethodPost && c.ContentType() == gin.MIMEJSON {
		var body struct {
			Lat      coordinate `json:"lat"`
			Lon      coordinate `json:"lon"`
			State    string     `json:"state"`
			District string     `json:"district"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			zap.L().Debug("unreadable recommend body", zap.Error(err))
		}
		return Request{
			Lat:      body.Lat.value,
			Lon:      body.Lon.value,
			State:    body.State,
			District: body.District,
		}
	}

	value := func(key string) string {
		if v, ok := c.GetPostForm(key); ok {
			return v
		}
		return c.Query(key)
	}
	return Request{
		Lat:      parseCoordinate(value("lat")),
		Lon:      parseCoordinate(value("lon")),
		State:    value("state"),
		District: value("district"),
	}
}

// --------------------------------------------------
// List my recommendation history
// --------------------------------------------------
func (h *Handler) ListMyHistory(c *gin.Context) {
	farmerID := c.GetString("farmerID")
	if farmerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	entries, err := h.service.History(c.Request.Context(), farmerID, limit)
	if err != nil {
		zap.L().Error("list recommendation history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
