package timeslot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/auth"
	"github.com/joroheos90/easygymapp/internal/logger"
	"github.com/joroheos90/easygymapp/internal/member"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     Repository
	service  Service
	members  member.Repository
	activity activity.Recorder
}

func NewHandler(db *sqlx.DB, activityRepo activity.Recorder, skipWeekdays []int) *Handler {
	repo := NewRepository(db)
	return &Handler{
		repo:     repo,
		service:  NewService(repo, skipWeekdays),
		members:  member.NewRepository(db),
		activity: activityRepo,
	}
}

// CreateBaseSlot godoc
// @Summary      Create base timeslot
// @Tags         timeslots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBaseSlotRequest  true  "Base slot data"
// @Success      201      {object}  BaseSlot
// @Failure      400      {object}  gin.H
// @Router       /admin/base-slots [post]
func (h *Handler) CreateBaseSlot(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	var req CreateBaseSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.repo.CreateBase(c.Request.Context(), gymID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create base slot"})
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ListBaseSlots godoc
// @Summary      List base timeslots
// @Tags         timeslots
// @Security     BearerAuth
// @Produce      json
// @Param        active  query     bool  false  "Only active templates"
// @Success      200     {array}   BaseSlot
// @Router       /admin/base-slots [get]
func (h *Handler) ListBaseSlots(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	activeOnly := c.Query("active") == "true"
	slots, err := h.repo.ListBase(c.Request.Context(), gymID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch base slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// UpdateBaseSlot godoc
// @Summary      Update base timeslot
// @Tags         timeslots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int                    true  "Base slot ID"
// @Param        request  body      UpdateBaseSlotRequest  true  "Fields to update"
// @Success      200      {object}  BaseSlot
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/base-slots/{slotID} [patch]
func (h *Handler) UpdateBaseSlot(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	var req UpdateBaseSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.repo.UpdateBase(c.Request.Context(), gymID, slotID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Base slot not found"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

// SetBaseSlotActive godoc
// @Summary      Activate or deactivate a base timeslot
// @Description  Deactivated templates stop materializing daily slots. Already published days keep their slots.
// @Tags         timeslots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int   true  "Base slot ID"
// @Success      200      {object}  BaseSlot
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/base-slots/{slotID}/active [put]
func (h *Handler) SetBaseSlotActive(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	actorID, _ := auth.GetUserID(c)

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.repo.SetBaseActive(c.Request.Context(), gymID, slotID, *req.Active)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Base slot not found"})
		return
	}

	event := activity.EventBaseSlotDeactivate
	if *req.Active {
		event = activity.EventBaseSlotActivate
	}
	if err := h.activity.Record(c.Request.Context(), gymID, actorID, h.actorName(c, gymID, actorID), event,
		map[string]string{"slot_title": slot.Title}); err != nil {
		logger.Errorf("Failed to record base slot activity: %v", err)
	}

	c.JSON(http.StatusOK, slot)
}

// PublishToday godoc
// @Summary      Publish today's timeslots
// @Tags         timeslots
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  PublishResult
// @Router       /admin/publish/today [post]
func (h *Handler) PublishToday(c *gin.Context) {
	h.publishOne(c, time.Now())
}

// PublishTomorrow godoc
// @Summary      Publish tomorrow's timeslots
// @Tags         timeslots
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  PublishResult
// @Router       /admin/publish/tomorrow [post]
func (h *Handler) PublishTomorrow(c *gin.Context) {
	h.publishOne(c, time.Now().AddDate(0, 0, 1))
}

func (h *Handler) publishOne(c *gin.Context, date time.Time) {
	gymID, _ := auth.GetGymID(c)

	result, err := h.service.PublishDay(c.Request.Context(), gymID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish slots"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// PublishWeek godoc
// @Summary      Publish the next seven days
// @Tags         timeslots
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  PublishResult
// @Router       /admin/publish/week [post]
func (h *Handler) PublishWeek(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	results, err := h.service.PublishWeek(c.Request.Context(), gymID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish slots"})
		return
	}

	c.JSON(http.StatusOK, results)
}

// ListDaySlots godoc
// @Summary      Day overview
// @Description  Lists the date's timeslots with enrollment counts.
// @Tags         timeslots
// @Security     BearerAuth
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   DailySlot
// @Failure      400   {object}  gin.H
// @Router       /days/{date}/slots [get]
func (h *Handler) ListDaySlots(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, use YYYY-MM-DD"})
		return
	}

	slots, err := h.repo.ListByDate(c.Request.Context(), gymID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch slots"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// UpdateDailySlot godoc
// @Summary      Update a daily timeslot
// @Tags         timeslots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int                     true  "Daily slot ID"
// @Param        request  body      UpdateDailySlotRequest  true  "Fields to update"
// @Success      200      {object}  DailySlot
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/slots/{slotID} [patch]
func (h *Handler) UpdateDailySlot(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	var req UpdateDailySlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.repo.UpdateDaily(c.Request.Context(), gymID, slotID, req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

// SetSlotStatus godoc
// @Summary      Close, cancel or reopen a daily timeslot
// @Tags         timeslots
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        slotID   path      int   true  "Daily slot ID"
// @Success      200      {object}  DailySlot
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/slots/{slotID}/status [put]
func (h *Handler) SetSlotStatus(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=open closed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.repo.SetStatus(c.Request.Context(), gymID, slotID, req.Status)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slot"})
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *Handler) actorName(c *gin.Context, gymID, actorID int) string {
	actor, err := h.members.GetByID(c.Request.Context(), gymID, actorID)
	if err != nil {
		return "unknown"
	}
	return actor.FullName
}
