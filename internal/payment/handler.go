package payment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/api"
	"github.com/joroheos90/easygymapp/internal/auth"
	"github.com/joroheos90/easygymapp/internal/logger"
	"github.com/joroheos90/easygymapp/internal/member"
	"github.com/joroheos90/easygymapp/internal/metrics"
	"github.com/joroheos90/easygymapp/internal/period"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Notifier queues a receipt email after a payment is recorded. Delivery is
// best effort.
type Notifier interface {
	PaymentReceived(ctx context.Context, gymID, userID int, amount, periodLabel string) error
}

type Handler struct {
	repo     Repository
	service  Service
	members  member.Repository
	activity activity.Recorder
	notifier Notifier
}

func NewHandler(db *sqlx.DB, activityRepo activity.Recorder, notifier Notifier) *Handler {
	repo := NewRepository(db)
	members := member.NewRepository(db)
	return &Handler{
		repo:     repo,
		service:  NewService(repo, members),
		members:  members,
		activity: activityRepo,
		notifier: notifier,
	}
}

// CreatePayment godoc
// @Summary      Record payment
// @Description  Records a manually entered payment for a member. If no period is given, the member's current period is used. Admin only.
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePaymentRequest  true  "Payment data"
// @Success      201      {object}  Payment
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/payments [post]
func (h *Handler) CreatePayment(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	actorID, _ := auth.GetUserID(c)

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := api.BindingFieldErrors(err); fields != nil {
			api.RespondWithValidationErrors(c, fields)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.members.GetByID(c.Request.Context(), gymID, req.UserID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	var start, end time.Time
	if req.PeriodStart == "" || req.PeriodEnd == "" {
		start, end = period.Current(m.JoinDate.Day(), time.Now())
	} else {
		start, err = time.Parse("2006-01-02", req.PeriodStart)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_start, use YYYY-MM-DD"})
			return
		}
		end, err = time.Parse("2006-01-02", req.PeriodEnd)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period_end, use YYYY-MM-DD"})
			return
		}
	}

	if !end.After(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period_end must be greater than period_start"})
		return
	}

	label := start.Format("Jan-2006")
	p, err := h.repo.Create(c.Request.Context(), &Payment{
		GymID:       gymID,
		UserID:      req.UserID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		PeriodStart: start,
		PeriodEnd:   end,
		PeriodLabel: &label,
		Notes:       req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	metrics.RecordPayment(req.Method)

	actorName := h.actorName(c, gymID, actorID)
	if err := h.activity.Record(c.Request.Context(), gymID, actorID, actorName, activity.EventPaymentAdd,
		map[string]string{
			"member_name": m.FullName,
			"method":      req.Method,
			"amount":      formatCents(req.AmountCents),
		}); err != nil {
		logger.Errorf("Failed to record payment_add activity: %v", err)
	}

	if h.notifier != nil {
		if err := h.notifier.PaymentReceived(c.Request.Context(), gymID, req.UserID, formatCents(req.AmountCents), label); err != nil {
			logger.Errorf("Failed to queue payment receipt: %v", err)
		}
	}

	c.JSON(http.StatusCreated, p)
}

// DeletePayment godoc
// @Summary      Delete payment
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        paymentID  path      int  true  "Payment ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /admin/payments/{paymentID} [delete]
func (h *Handler) DeletePayment(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	actorID, _ := auth.GetUserID(c)

	paymentID, err := strconv.Atoi(c.Param("paymentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment ID"})
		return
	}

	p, err := h.repo.Delete(c.Request.Context(), gymID, paymentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	memberName := "unknown"
	if m, err := h.members.GetByID(c.Request.Context(), gymID, p.UserID); err == nil {
		memberName = m.FullName
	}

	actorName := h.actorName(c, gymID, actorID)
	if err := h.activity.Record(c.Request.Context(), gymID, actorID, actorName, activity.EventPaymentRemove,
		map[string]string{"member_name": memberName}); err != nil {
		logger.Errorf("Failed to record payment_remove activity: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted"})
}

// ListMemberPayments godoc
// @Summary      List payments for a member
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {array}   Payment
// @Failure      400       {object}  gin.H
// @Router       /admin/members/{memberID}/payments [get]
func (h *Handler) ListMemberPayments(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	payments, err := h.repo.ListByUser(c.Request.Context(), gymID, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// ListMyPayments godoc
// @Summary      List my payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Payment
// @Failure      500  {object}  gin.H
// @Router       /my/payments [get]
func (h *Handler) ListMyPayments(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	payments, err := h.repo.ListByUser(c.Request.Context(), gymID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetMyPaidStatus godoc
// @Summary      Current period payment status
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  PaidStatusResponse
// @Failure      500  {object}  gin.H
// @Router       /my/payments/status [get]
func (h *Handler) GetMyPaidStatus(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	userID, _ := auth.GetUserID(c)

	now := time.Now()
	start, end, err := h.service.CurrentPeriodFor(c.Request.Context(), gymID, userID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute period"})
		return
	}

	paid, err := h.service.HasPaidCurrentPeriod(c.Request.Context(), gymID, userID, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check payment status"})
		return
	}

	c.JSON(http.StatusOK, PaidStatusResponse{Paid: paid, PeriodStart: start, PeriodEnd: end})
}

// ListDebtors godoc
// @Summary      List debtors
// @Description  Active members without a payment covering their current period.
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   member.Member
// @Failure      500  {object}  gin.H
// @Router       /admin/debtors [get]
func (h *Handler) ListDebtors(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	debtors, err := h.service.ListDebtors(c.Request.Context(), gymID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debtors"})
		return
	}

	c.JSON(http.StatusOK, debtors)
}

func (h *Handler) actorName(c *gin.Context, gymID, actorID int) string {
	actor, err := h.members.GetByID(c.Request.Context(), gymID, actorID)
	if err != nil {
		return "unknown"
	}
	return actor.FullName
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
