package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"motel-backoffice/controllers"
	"motel-backoffice/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers bundles everything SetupRouter wires.
type Controllers struct {
	Rooms            *controllers.RoomController
	Reservations     *controllers.ReservationController
	ReservationTypes *controllers.ReservationTypeController
	Inventory        *controllers.InventoryController
	Customers        *controllers.CustomerController
	ChatbotMessages  *controllers.ChatbotMessageController
	Pendings         *controllers.PendingReservationController
	ChatHistories    *controllers.ChatHistoryController
	Skill            *controllers.SkillController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.List)
			rooms.GET("/:id", ctl.Rooms.Get)
			rooms.POST("", ctl.Rooms.Create)
			rooms.PUT("/:id", ctl.Rooms.Update)
			rooms.DELETE("/:id", ctl.Rooms.Delete)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", ctl.Reservations.List)
			reservations.GET("/:id", ctl.Reservations.Get)
			reservations.POST("", ctl.Reservations.Create)
			reservations.PATCH("/:id", ctl.Reservations.Patch)
			reservations.PATCH("/:id/status", ctl.Reservations.UpdateStatus)
			reservations.DELETE("/:id", ctl.Reservations.Delete)
		}

		reservationTypes := api.Group("/reservation-types")
		{
			reservationTypes.GET("", ctl.ReservationTypes.List)
			reservationTypes.POST("", ctl.ReservationTypes.Create)
			reservationTypes.PUT("/:id", ctl.ReservationTypes.Update)
			reservationTypes.DELETE("/:id", ctl.ReservationTypes.Delete)
		}

		inventory := api.Group("/inventory")
		{
			inventory.GET("", ctl.Inventory.Calendar)
			inventory.PUT("", ctl.Inventory.SetAdjustment)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", ctl.Customers.List)
			customers.GET("/:id", ctl.Customers.Get)
			customers.POST("", ctl.Customers.Create)
			customers.PATCH("/:id", ctl.Customers.Update)
		}

		chatbotMessages := api.Group("/chatbot-messages")
		{
			chatbotMessages.GET("", ctl.ChatbotMessages.List)
			chatbotMessages.PUT("", ctl.ChatbotMessages.Upsert)
			chatbotMessages.DELETE("/:id", ctl.ChatbotMessages.Delete)
		}

		api.GET("/pending-reservations", ctl.Pendings.List)
		api.GET("/chat-histories", ctl.ChatHistories.List)

		api.POST("/kakao/skill", ctl.Skill.Handle)
	}

	return r
}
