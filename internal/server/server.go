package server

import (
	"context"
	"net/http"

	"github.com/joroheos90/easygymapp/internal/activity"
	"github.com/joroheos90/easygymapp/internal/auth"
	"github.com/joroheos90/easygymapp/internal/config"
	"github.com/joroheos90/easygymapp/internal/gym"
	"github.com/joroheos90/easygymapp/internal/measurement"
	"github.com/joroheos90/easygymapp/internal/member"
	"github.com/joroheos90/easygymapp/internal/notify"
	"github.com/joroheos90/easygymapp/internal/payment"
	"github.com/joroheos90/easygymapp/internal/signup"
	"github.com/joroheos90/easygymapp/internal/timeslot"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
}

func New(db *sqlx.DB, cfg *config.Config, queue *notify.Queue) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	activityRepo := activity.NewRepository(db)

	memberHandler := member.NewHandler(db, activityRepo, cfg.JWTSecret)
	gymHandler := gym.NewHandler(db)
	timeslotHandler := timeslot.NewHandler(db, activityRepo, cfg.SkipWeekdays)
	signupHandler := signup.NewHandler(db, activityRepo, queue)
	paymentHandler := payment.NewHandler(db, activityRepo, queue)
	measurementHandler := measurement.NewHandler(db)
	activityHandler := activity.NewHandler(db)

	public := router.Group("/auth")
	{
		public.POST("/login", memberHandler.Login)
		public.POST("/refresh", memberHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", memberHandler.GetMe)
		protected.GET("/days/:date/slots", timeslotHandler.ListDaySlots)
		protected.POST("/slots/:slotID/signup", signupHandler.Signup)
		protected.GET("/slots/:slotID/roster", signupHandler.Roster)
		protected.GET("/my/signups", signupHandler.ListMySignups)
		protected.GET("/my/payments", paymentHandler.ListMyPayments)
		protected.GET("/my/payments/status", paymentHandler.GetMyPaidStatus)
		protected.POST("/my/weights", measurementHandler.CreateMyWeight)
		protected.GET("/my/weights/trend", measurementHandler.GetMyTrend)
		protected.DELETE("/my/weights/:recordID", measurementHandler.DeleteMyWeight)
	}

	staffMiddleware := auth.RequireRole(member.RoleAdmin, member.RoleStaff)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, staffMiddleware)
	{
		admin.POST("/members", memberHandler.CreateMember)
		admin.GET("/members", memberHandler.ListMembers)
		admin.PATCH("/members/:memberID", memberHandler.UpdateMember)
		admin.DELETE("/members/:memberID", memberHandler.DeactivateMember)
		admin.GET("/members/:memberID/payments", paymentHandler.ListMemberPayments)
		admin.GET("/members/:memberID/weights", measurementHandler.ListMemberWeights)

		admin.POST("/payments", paymentHandler.CreatePayment)
		admin.DELETE("/payments/:paymentID", paymentHandler.DeletePayment)
		admin.GET("/debtors", paymentHandler.ListDebtors)

		admin.POST("/base-slots", timeslotHandler.CreateBaseSlot)
		admin.GET("/base-slots", timeslotHandler.ListBaseSlots)
		admin.PATCH("/base-slots/:slotID", timeslotHandler.UpdateBaseSlot)
		admin.PUT("/base-slots/:slotID/active", timeslotHandler.SetBaseSlotActive)

		admin.POST("/publish/today", timeslotHandler.PublishToday)
		admin.POST("/publish/tomorrow", timeslotHandler.PublishTomorrow)
		admin.POST("/publish/week", timeslotHandler.PublishWeek)

		admin.PATCH("/slots/:slotID", timeslotHandler.UpdateDailySlot)
		admin.PUT("/slots/:slotID/status", timeslotHandler.SetSlotStatus)

		admin.GET("/activity", activityHandler.ListActivity)
	}

	superAdmin := router.Group("/admin")
	superAdmin.Use(authMiddleware, auth.RequireRole(member.RoleAdmin))
	{
		superAdmin.POST("/gyms", gymHandler.CreateGym)
		superAdmin.GET("/gyms", gymHandler.ListGyms)
		superAdmin.PUT("/gyms/:gymID/active", gymHandler.SetGymActive)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
