package measurement

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/joroheos90/easygymapp/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo    Repository
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	repo := NewRepository(db)
	return &Handler{repo: repo, service: NewService(repo)}
}

// CreateMyWeight godoc
// @Summary      Record a weight measurement
// @Tags         measurements
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateWeightRequest  true  "Weight in kilograms"
// @Success      201      {object}  WeightRecord
// @Failure      400      {object}  gin.H
// @Router       /my/weights [post]
func (h *Handler) CreateMyWeight(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	var req CreateWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.repo.Create(c.Request.Context(), gymID, userID, req.WeightKg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record weight"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// GetMyTrend godoc
// @Summary      Weight trend
// @Description  Recent weight history with the net change across the window.
// @Tags         measurements
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  TrendResponse
// @Failure      500  {object}  gin.H
// @Router       /my/weights/trend [get]
func (h *Handler) GetMyTrend(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	trend, err := h.service.Trend(c.Request.Context(), gymID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trend"})
		return
	}

	c.JSON(http.StatusOK, trend)
}

// DeleteMyWeight godoc
// @Summary      Delete a weight measurement
// @Tags         measurements
// @Security     BearerAuth
// @Produce      json
// @Param        recordID  path      int  true  "Record ID"
// @Success      200       {object}  gin.H
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /my/weights/{recordID} [delete]
func (h *Handler) DeleteMyWeight(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	recordID, err := strconv.Atoi(c.Param("recordID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), gymID, userID, recordID); err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

// ListMemberWeights godoc
// @Summary      Member weight history
// @Tags         measurements
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  TrendResponse
// @Failure      400       {object}  gin.H
// @Router       /admin/members/{memberID}/weights [get]
func (h *Handler) ListMemberWeights(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	trend, err := h.service.Trend(c.Request.Context(), gymID, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weights"})
		return
	}

	c.JSON(http.StatusOK, trend)
}
