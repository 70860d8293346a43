package api

import (
	stdhttp "net/http"

	intconfig "adminhub/internal/config"
	"adminhub/internal/domain"
	h "adminhub/internal/http/handlers"
	"adminhub/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func can(a domain.Action) gin.HandlerFunc {
	return middleware.RequireRoles(domain.RolesFor(a)...)
}

func NewRouter(env intconfig.Env, hd h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.Metrics(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn().Err(err).Msg("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route bulunamadı",
			"code":   "not_found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/db-check", hd.DBCheck)
	api.GET("/routes", h.Routes(r))

	auth := api.Group("/auth")
	auth.POST("/login", hd.Login)
	auth.POST("/register", hd.Register)

	secured := api.Group("", middleware.Auth(hd.Auth))
	secured.GET("/auth/me", hd.Me)

	users := secured.Group("/users")
	users.GET("", can(domain.ActManageUsers), hd.ListUsers)
	users.GET("/:id", hd.GetUser)
	users.POST("", can(domain.ActManageUsers), hd.CreateUser)
	users.PUT("/:id", can(domain.ActManageUsers), hd.UpdateUser)
	users.PATCH("/:id/status", can(domain.ActManageUsers), hd.UpdateUserStatus)
	users.DELETE("/:id", can(domain.ActManageUsers), hd.DeleteUser)

	mountInventory(secured, hd)
	mountSports(secured, hd)

	dash := secured.Group("/dashboard")
	dash.GET("/inventory", can(domain.ActViewInventoryReports), hd.InventoryDashboard)
	dash.GET("/sports", hd.SportsDashboard)

	return r
}

func mountInventory(g *gin.RouterGroup, hd h.Handler) {
	manage := can(domain.ActManageInventory)

	categories := g.Group("/categories")
	categories.GET("", hd.ListCategories)
	categories.GET("/:id", hd.GetCategory)
	categories.POST("", manage, hd.CreateCategory)
	categories.PUT("/:id", manage, hd.UpdateCategory)
	categories.DELETE("/:id", manage, hd.DeleteCategory)

	assets := g.Group("/assets")
	assets.GET("", hd.ListAssets)
	assets.GET("/:id", hd.GetAsset)
	assets.GET("/:id/detail", hd.GetAssetDetail)
	assets.GET("/user/:userId/assigned", hd.ListAssignedAssets)
	assets.POST("", manage, hd.CreateAsset)
	assets.PUT("/:id", manage, hd.UpdateAsset)
	assets.PATCH("/:id/status", manage, hd.UpdateAssetStatus)
	assets.DELETE("/:id", manage, hd.DeleteAsset)

	// per-record ownership checks for :id, user and receipt live in the service
	assignments := g.Group("/assignments")
	assignments.GET("", can(domain.ActViewInventoryReports), hd.ListAssignments)
	assignments.GET("/:id", hd.GetAssignment)
	assignments.GET("/:id/receipt", hd.GetAssignmentReceipt)
	assignments.GET("/asset/:assetId", can(domain.ActViewInventoryReports), hd.ListAssetAssignments)
	assignments.GET("/asset/:assetId/active", hd.GetActiveAssignment)
	assignments.GET("/user/:userId", hd.ListUserAssignments)
	assignments.POST("", can(domain.ActAssign), hd.CreateAssignment)
}

func mountSports(g *gin.RouterGroup, hd h.Handler) {
	venues := g.Group("/venues")
	venues.GET("", hd.ListVenues)
	venues.GET("/:id", hd.GetVenue)
	venues.POST("", can(domain.ActManageVenues), hd.CreateVenue)
	venues.PUT("/:id", can(domain.ActManageVenues), hd.UpdateVenue)
	venues.PATCH("/:id/status", can(domain.ActManageVenues), hd.UpdateVenueStatus)
	venues.DELETE("/:id", can(domain.ActManageVenues), hd.DeleteVenue)

	competitions := g.Group("/competitions")
	competitions.GET("", hd.ListCompetitions)
	competitions.GET("/:id", hd.GetCompetition)
	competitions.POST("", can(domain.ActManageCompetitions), hd.CreateCompetition)
	competitions.PUT("/:id", can(domain.ActManageCompetitions), hd.UpdateCompetition)
	competitions.PATCH("/:id/status", can(domain.ActManageCompetitions), hd.UpdateCompetitionStatus)
	competitions.DELETE("/:id", can(domain.ActManageCompetitions), hd.DeleteCompetition)

	participants := g.Group("/participants")
	participants.GET("", hd.ListParticipants)
	participants.GET("/:id", hd.GetParticipant)
	participants.POST("", can(domain.ActRegisterParticipant), hd.CreateParticipant)
	participants.PUT("/:id", can(domain.ActManageParticipants), hd.UpdateParticipant)
	participants.PATCH("/:id/status", can(domain.ActManageParticipants), hd.UpdateParticipantStatus)
	participants.PATCH("/:id/payment", can(domain.ActManageParticipants), hd.UpdateParticipantPayment)
	participants.DELETE("/:id", can(domain.ActManageParticipants), hd.DeleteParticipant)

	matches := g.Group("/matches")
	matches.GET("", hd.ListMatches)
	matches.GET("/:id", hd.GetMatch)
	matches.POST("", can(domain.ActManageMatches), hd.CreateMatch)
	matches.PUT("/:id", can(domain.ActManageMatches), hd.UpdateMatch)
	matches.PATCH("/:id/status", can(domain.ActOfficiateMatches), hd.UpdateMatchStatus)
	matches.PATCH("/:id/score", can(domain.ActOfficiateMatches), hd.UpdateMatchScore)
	matches.DELETE("/:id", can(domain.ActManageMatches), hd.DeleteMatch)

	// owners may read, move and cancel their own bookings; the service checks it
	reservations := g.Group("/reservations")
	reservations.GET("", hd.ListReservations)
	reservations.GET("/availability", hd.ReservationAvailability)
	reservations.GET("/:id", hd.GetReservation)
	reservations.POST("", can(domain.ActReserveVenues), hd.CreateReservation)
	reservations.PUT("/:id", can(domain.ActReserveVenues), hd.UpdateReservation)
	reservations.PATCH("/:id/cancel", can(domain.ActReserveVenues), hd.CancelReservation)
	reservations.PATCH("/:id/status", can(domain.ActManageReservations), hd.UpdateReservationStatus)
	reservations.DELETE("/:id", can(domain.ActManageReservations), hd.DeleteReservation)
}
