package gym

import (
	"net/http"
	"strconv"

	"github.com/joroheos90/easygymapp/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// CreateGym godoc
// @Summary      Create gym
// @Description  Registers a new gym tenant. Admin only.
// @Tags         gyms
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateGymRequest  true  "Gym data"
// @Success      201      {object}  Gym
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /admin/gyms [post]
func (h *Handler) CreateGym(c *gin.Context) {
	var req CreateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fields := api.BindingFieldErrors(err); fields != nil {
			api.RespondWithValidationErrors(c, fields)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	g, err := h.repo.Create(c.Request.Context(), req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create gym"})
		return
	}

	c.JSON(http.StatusCreated, g)
}

// ListGyms godoc
// @Summary      List gyms
// @Tags         gyms
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Gym
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/gyms [get]
func (h *Handler) ListGyms(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	gyms, err := h.repo.List(c.Request.Context(), activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch gyms"})
		return
	}

	c.JSON(http.StatusOK, gyms)
}

// SetGymActive godoc
// @Summary      Activate or deactivate gym
// @Tags         gyms
// @Security     BearerAuth
// @Produce      json
// @Param        gymID   path      int   true  "Gym ID"
// @Param        active  query     bool  true  "New active flag"
// @Success      200     {object}  api.MessageResponse
// @Failure      400     {object}  api.ErrorResponse
// @Failure      404     {object}  api.ErrorResponse
// @Router       /admin/gyms/{gymID}/active [post]
func (h *Handler) SetGymActive(c *gin.Context) {
	gymID, err := strconv.Atoi(c.Param("gymID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid gym ID"})
		return
	}

	active := c.Query("active") == "true"
	if err := h.repo.SetActive(c.Request.Context(), gymID, active); err != nil {
		if err == ErrGymNotFound {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Gym not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update gym"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Gym updated"})
}
