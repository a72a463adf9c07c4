package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rentalapp/internal/config"
	"rentalapp/internal/database"
	"rentalapp/internal/middleware"
	"rentalapp/internal/modules/auth"
	"rentalapp/internal/modules/booking"
	"rentalapp/internal/modules/catalog"
	"rentalapp/internal/modules/chat"
	"rentalapp/internal/modules/favorite"
	"rentalapp/internal/modules/review"
	"rentalapp/internal/modules/wallet"
	jwtsvc "rentalapp/internal/pkg/jwt"
	"rentalapp/internal/repository"
)

// logMailer stands in for a real email provider in development: the
// verification code goes to the log instead of an inbox.
type logMailer struct {
	log *slog.Logger
}

func (m *logMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.log.Info("verification code issued", "email", email, "code", code)
	return nil
}

func main() {
	_ = godotenv.Load()

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(log)

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "rentalapp.db"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Error("JWT_SECRET is empty")
		os.Exit(1)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	chatRepo := repository.NewChatRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)
	pricing := config.LoadPricing()

	authService := auth.NewService(userRepo, j, &logMailer{log: log}, os.Getenv("VERIFICATION_PEPPER"))
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(propertyRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	walletService := wallet.NewService(userRepo)
	walletHandler := wallet.NewHandler(walletService)

	bookingService := booking.NewService(bookingRepo, propertyRepo, walletService, pricing)

	drafts := booking.NewMemoryDraftStore()
	defer drafts.Subscribe(func(d *booking.Draft) {
		log.Debug("draft updated", "draft_id", d.ID, "step", d.Step().String())
	})()

	// Drafts are handed to an external booking backend when one is
	// configured, otherwise they land on the local booking service.
	var submitter booking.Submitter
	if backend := os.Getenv("BOOKING_BACKEND_URL"); backend != "" {
		submitter = booking.NewHTTPSubmitter(backend, &http.Client{Timeout: 15 * time.Second})
	} else {
		submitter = booking.NewServiceSubmitter(bookingService)
	}
	bookingHandler := booking.NewHandler(bookingService, drafts, submitter)

	hub := chat.NewHub()
	defer hub.Close()
	chatService := chat.NewService(chatRepo, propertyRepo, hub)
	chatHandler := chat.NewHandler(chatService, hub)

	favoriteHandler := favorite.NewHandler(favoriteRepo)

	reviewService := review.NewService(reviewRepo, propertyRepo)
	reviewHandler := review.NewHandler(reviewService)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			walletHandler.RegisterRoutes(protected)
			favoriteHandler.RegisterRoutes(protected)
			chatHandler.RegisterRoutes(protected)
			reviewHandler.RegisterProtectedRoutes(protected)

			host := protected.Group("/")
			host.Use(middleware.RequireHost())
			{
				catalogHandler.RegisterHostRoutes(host)
			}
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Info("listening", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
