package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"motel-backoffice/chatbot"
	"motel-backoffice/config"
	"motel-backoffice/controllers"
	"motel-backoffice/jobs"
	"motel-backoffice/notify"
	"motel-backoffice/repository"
	"motel-backoffice/routes"
	"motel-backoffice/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	store := repository.NewGorm(config.DB)
	log.Println("Database connection established and migrations applied")

	// Services
	notifier := notify.NewDispatcherFromEnv()
	inventoryService := services.NewInventoryService(store)
	reservationService := services.NewReservationService(store, inventoryService, notifier)
	customerService := services.NewCustomerService(store)
	skillHandler := chatbot.NewHandler(store, inventoryService, reservationService, customerService)

	// Controllers
	router := routes.SetupRouter(routes.Controllers{
		Rooms:            controllers.NewRoomController(store),
		Reservations:     controllers.NewReservationController(reservationService),
		ReservationTypes: controllers.NewReservationTypeController(store),
		Inventory:        controllers.NewInventoryController(inventoryService),
		Customers:        controllers.NewCustomerController(customerService),
		ChatbotMessages:  controllers.NewChatbotMessageController(store),
		Pendings:         controllers.NewPendingReservationController(store),
		ChatHistories:    controllers.NewChatHistoryController(store),
		Skill:            controllers.NewSkillController(skillHandler, store),
	})

	// Scheduled jobs (pending reservation sweep)
	cronRunner := cron.New()
	if err := jobs.Init(cronRunner, store); err != nil {
		log.Fatalf("Cron init failed: %v", err)
	}
	defer cronRunner.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
