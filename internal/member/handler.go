package member

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/api"
	"github.com/joroheos90/easygymapp/internal/auth"
	"github.com/joroheos90/easygymapp/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo      Repository
	activity  activity.Recorder
	jwtSecret string
}

func NewHandler(db *sqlx.DB, activityRepo activity.Recorder, jwtSecret string) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		activity:  activityRepo,
		jwtSecret: jwtSecret,
	}
}

// Login godoc
// @Summary      Login
// @Description  Authenticates a member by email and password and returns tokens scoped to their gym.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !m.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
		return
	}

	if !auth.CheckPassword(m.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(m.ID, m.GymID, m.Role, h.jwtSecret, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tokens"})
		return
	}

	if err := h.activity.Record(c.Request.Context(), m.GymID, m.ID, m.FullName, activity.EventLogin, nil); err != nil {
		logger.Errorf("Failed to record login activity for member %d: %v", m.ID, err)
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       *m,
	})
}

// Refresh godoc
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  gin.H
// @Failure      400  {object}  gin.H
// @Failure      401  {object}  gin.H
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, _, err := auth.RefreshAccessToken(req.RefreshToken, h.jwtSecret, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": accessToken})
}

// GetMe godoc
// @Summary      Current member
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Member
// @Failure      404  {object}  gin.H
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	gymID, _ := auth.GetGymID(c)

	m, err := h.repo.GetByID(c.Request.Context(), gymID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// CreateMember godoc
// @Summary      Create member
// @Description  Registers a member in the current gym with the default password. Admin only.
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateMemberRequest  true  "Member data"
// @Success      201      {object}  Member
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/members [post]
func (h *Handler) CreateMember(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	actorID, _ := auth.GetUserID(c)

	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := api.BindingFieldErrors(err); fields != nil {
			api.RespondWithValidationErrors(c, fields)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.repo.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	passwordHash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	role := req.Role
	if role == "" {
		role = RoleMember
	}

	m, err := h.repo.Create(c.Request.Context(), gymID, req.FullName, req.Email, passwordHash, role, today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create member"})
		return
	}

	if req.Phone != nil {
		m, err = h.repo.Update(c.Request.Context(), gymID, m.ID, UpdateMemberRequest{Phone: req.Phone})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
			return
		}
	}

	actorName := h.actorName(c, gymID, actorID)
	if err := h.activity.Record(c.Request.Context(), gymID, actorID, actorName, activity.EventMemberAdd,
		map[string]string{"member_name": m.FullName}); err != nil {
		logger.Errorf("Failed to record member_add activity: %v", err)
	}

	c.JSON(http.StatusCreated, m)
}

// ListMembers godoc
// @Summary      List members
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        active  query     bool    false  "Only active members (default true)"
// @Param        phone   query     string  false  "Look up a single member by phone"
// @Success      200     {array}   Member
// @Failure      500     {object}  gin.H
// @Router       /admin/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	// Front-desk lookup: an exact phone match narrows the list to one.
	if phone := c.Query("phone"); phone != "" {
		m, err := h.repo.FindByPhone(c.Request.Context(), gymID, phone)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusOK, []Member{})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
			return
		}
		c.JSON(http.StatusOK, []Member{*m})
		return
	}

	activeOnly := c.DefaultQuery("active", "true") == "true"

	members, err := h.repo.List(c.Request.Context(), gymID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// UpdateMember godoc
// @Summary      Update member
// @Tags         members
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        memberID  path      int                  true  "Member ID"
// @Param        request   body      UpdateMemberRequest  true  "Fields to update"
// @Success      200       {object}  Member
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /admin/members/{memberID} [patch]
func (h *Handler) UpdateMember(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.repo.Update(c.Request.Context(), gymID, memberID, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update member"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeactivateMember godoc
// @Summary      Deactivate member
// @Tags         members
// @Security     BearerAuth
// @Produce      json
// @Param        memberID  path      int  true  "Member ID"
// @Success      200       {object}  gin.H
// @Failure      400       {object}  gin.H
// @Failure      404       {object}  gin.H
// @Router       /admin/members/{memberID} [delete]
func (h *Handler) DeactivateMember(c *gin.Context) {
	gymID, _ := auth.GetGymID(c)
	actorID, _ := auth.GetUserID(c)

	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid member ID"})
		return
	}

	inactive := false
	m, err := h.repo.Update(c.Request.Context(), gymID, memberID, UpdateMemberRequest{IsActive: &inactive})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate member"})
		return
	}

	actorName := h.actorName(c, gymID, actorID)
	if err := h.activity.Record(c.Request.Context(), gymID, actorID, actorName, activity.EventMemberRemove,
		map[string]string{"member_name": m.FullName}); err != nil {
		logger.Errorf("Failed to record member_remove activity: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member deactivated"})
}

func (h *Handler) actorName(c *gin.Context, gymID, actorID int) string {
	actor, err := h.repo.GetByID(c.Request.Context(), gymID, actorID)
	if err != nil {
		return "unknown"
	}
	return actor.FullName
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
