package activity

import (
	"net/http"
	"strconv"

	"github.com/joroheos90/easygymapp/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const defaultListLimit = 50

type Handler struct {
	repo Recorder
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// ListActivity godoc
// @Summary      Recent activity
// @Description  Latest audit log entries for the gym, newest first.
// @Tags         activity
// @Security     BearerAuth
// @Produce      json
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {array}   Entry
// @Failure      500    {object}  gin.H
// @Router       /admin/activity [get]
func (h *Handler) ListActivity(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	entries, err := h.repo.List(c.Request.Context(), gymID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, entries)
}
