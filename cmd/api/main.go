package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/middleware"
	"tablebook/internal/modules/auth"
	"tablebook/internal/modules/notification"
	"tablebook/internal/modules/payment"
	"tablebook/internal/modules/reservation"
	"tablebook/internal/modules/slot"
	"tablebook/internal/modules/staff"
	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	tableRepo := repository.NewTableRepository(db)
	priorityRepo := repository.NewPriorityRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	joinRequestRepo := repository.NewJoinRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notification.NewHub()
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	slotService := slot.NewService(slotRepo, businessRepo, priorityRepo, reservationRepo)
	slotHandler := slot.NewHandler(slotService)

	reservationService := reservation.NewService(
		reservationRepo,
		tableRepo,
		slotRepo,
		businessRepo,
		notificationService,
	)
	reservationHandler := reservation.NewHandler(reservationService)

	staffService := staff.NewService(joinRequestRepo, userRepo, businessRepo, notificationService)
	staffHandler := staff.NewHandler(staffService, cfg.JoinPollInterval, cfg.JoinPollTimeout)

	paymentService := payment.NewService(
		paymentRepo,
		reservationRepo,
		reservationService,
		cfg.PaymentMerchantID,
		cfg.PaymentSecret,
		cfg.PaymentCurrency,
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService, log.Printf)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		slotHandler.RegisterRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)
		notificationHandler.RegisterStreamRoute(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			staffHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)

			operator := protected.Group("/")
			operator.Use(middleware.RequireRole("staff", "admin", "owner"))
			{
				slotHandler.RegisterProtectedRoutes(operator)
			}
		}
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
