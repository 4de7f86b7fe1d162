package signup

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/auth"
	"github.com/joroheos90/easygymapp/internal/logger"
	"github.com/joroheos90/easygymapp/internal/metrics"
	"github.com/joroheos90/easygymapp/internal/timeslot"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Notifier queues user-facing notifications. Delivery is best effort and
// never blocks a signup.
type Notifier interface {
	SignupConfirmed(ctx context.Context, gymID, userID int, slotTitle, slotDate string) error
}

type Handler struct {
	service  Service
	slots    timeslot.Repository
	notifier Notifier
}

func NewHandler(db *sqlx.DB, recorder activity.Recorder, notifier Notifier) *Handler {
	return &Handler{
		service:  NewService(db, recorder),
		slots:    timeslot.NewRepository(db),
		notifier: notifier,
	}
}

// Signup godoc
// @Summary      Sign up, cancel or switch
// @Description  Toggles the member's reservation on the slot. Hitting the slot they already hold cancels it; hitting another slot on the same day switches to it.
// @Tags         signups
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Daily slot ID"
// @Success      200     {object}  Result
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Failure      409     {object}  gin.H
// @Router       /slots/{slotID}/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	result, err := h.service.Execute(c.Request.Context(), gymID, userID, slotID, auth.IsAdmin(c))
	if err != nil {
		var rejection *Rejection
		switch {
		case errors.As(err, &rejection):
			metrics.RecordSignupTransition("request", "rejected")
			c.JSON(http.StatusConflict, gin.H{"error": rejection.Reason})
		case errors.Is(err, timeslot.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Slot not found"})
		default:
			logger.Errorf("Signup transaction failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process signup"})
		}
		return
	}

	metrics.RecordSignupTransition(result.Action, "ok")

	if h.notifier != nil && result.Action != ActionCancel {
		if slot, err := h.slots.GetDaily(c.Request.Context(), gymID, slotID); err == nil {
			if err := h.notifier.SignupConfirmed(c.Request.Context(), gymID, userID, slot.Title, slot.SlotDate.Format("2006-01-02")); err != nil {
				logger.Errorf("Failed to queue signup notification: %v", err)
			}
		}
	}

	c.JSON(http.StatusOK, result)
}

// Roster godoc
// @Summary      Slot roster
// @Description  Attendance list for a daily timeslot.
// @Tags         signups
// @Security     BearerAuth
// @Produce      json
// @Param        slotID  path      int  true  "Daily slot ID"
// @Success      200     {array}   RosterItem
// @Failure      400     {object}  gin.H
// @Router       /slots/{slotID}/roster [get]
func (h *Handler) Roster(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	slotID, err := strconv.Atoi(c.Param("slotID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot ID"})
		return
	}

	roster, err := h.service.Roster(c.Request.Context(), gymID, slotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch roster"})
		return
	}

	c.JSON(http.StatusOK, roster)
}

// ListMySignups godoc
// @Summary      My upcoming reservations
// @Tags         signups
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   UpcomingSignup
// @Failure      500  {object}  gin.H
// @Router       /my/signups [get]
func (h *Handler) ListMySignups(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	signups, err := h.service.ListUpcoming(c.Request.Context(), gymID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch signups"})
		return
	}

	c.JSON(http.StatusOK, signups)
}
