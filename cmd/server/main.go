package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Heytechmate/overtime-cafe/internal/config"
	"github.com/Heytechmate/overtime-cafe/internal/db"
	"github.com/Heytechmate/overtime-cafe/internal/handler"
	"github.com/Heytechmate/overtime-cafe/internal/repository"
	"github.com/Heytechmate/overtime-cafe/internal/server"
	"github.com/Heytechmate/overtime-cafe/internal/service"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("failed to run migrations", "err", err)
		os.Exit(1)
	}

	// Firebase Auth (optional)
	var firebaseAuth *auth.Client
	if cfg.FirebaseProjectID != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOptions(cfg)...)
		if err != nil {
			logger.Error("failed to init firebase app", "err", err)
			os.Exit(1)
		}
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Error("failed to init firebase auth", "err", err)
			os.Exit(1)
		}
		firebaseAuth = client
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	counterRepo := repository.CounterRepository{DB: pg}
	loyaltyRepo := repository.LoyaltyRepository{DB: pg}
	menuRepo := repository.MenuRepository{DB: pg}
	orderRepo := repository.OrderRepository{DB: pg, Counters: counterRepo}
	bookingRepo := repository.BookingRepository{DB: pg}
	facilityRepo := repository.FacilityRepository{DB: pg}
	settingsRepo := repository.SettingsRepository{DB: pg}
	notificationRepo := repository.NotificationRepository{DB: pg}
	logRepo := repository.ActivityLogRepository{DB: pg}
	dashboardRepo := repository.DashboardRepository{DB: pg}

	if err := menuRepo.SeedDefaults(ctx); err != nil {
		logger.Error("failed to seed menu", "err", err)
		os.Exit(1)
	}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Counters: counterRepo, Logger: logger, FirebaseAuth: firebaseAuth}
	loyaltySvc := service.LoyaltyService{Users: userRepo, Loyalty: loyaltyRepo, Settings: settingsRepo, Notifications: notificationRepo, Logs: logRepo, Logger: logger}
	orderSvc := service.OrderService{Orders: orderRepo, Menu: menuRepo, Users: userRepo, Settings: settingsRepo, Loyalty: loyaltyRepo, Notifications: notificationRepo, Logs: logRepo, Logger: logger}
	bookingSvc := service.BookingService{Bookings: bookingRepo, Settings: settingsRepo, Logs: logRepo, Logger: logger}
	autopilot := service.AutoPilotService{Facilities: facilityRepo, Bookings: bookingRepo, Logger: logger, Interval: cfg.AutoPilotInterval}

	go autopilot.Run(ctx)

	// handlers
	handlers := server.Handlers{
		Health:        handler.HealthHandler{DB: pg},
		Home:          handler.HomeHandler{},
		Auth:          handler.AuthHandler{Service: &authSvc, Users: userRepo},
		Menu:          handler.MenuHandler{Repo: menuRepo},
		MenuAdmin:     handler.MenuAdminHandler{Repo: menuRepo},
		Orders:        handler.OrderHandler{Service: &orderSvc},
		OrdersAdmin:   handler.OrderAdminHandler{Service: &orderSvc, Orders: orderRepo},
		Loyalty:       handler.LoyaltyHandler{Service: &loyaltySvc},
		LoyaltyAdmin:  handler.LoyaltyAdminHandler{Service: &loyaltySvc},
		Bookings:      handler.BookingHandler{Service: &bookingSvc},
		BookingsAdmin: handler.BookingAdminHandler{Service: &bookingSvc},
		Facilities:    handler.FacilityHandler{Facilities: facilityRepo, Settings: settingsRepo},
		FacilityAdmin: handler.FacilityAdminHandler{Facilities: facilityRepo, Logs: logRepo},
		SettingsAdmin: handler.SettingsAdminHandler{Repo: settingsRepo, Logs: logRepo},
		Members:       handler.MemberAdminHandler{Users: userRepo},
		Dashboard:     handler.DashboardHandler{Dashboard: dashboardRepo, Logs: logRepo},
		Notifications: handler.NotificationHandler{Repo: notificationRepo},
	}

	router := server.NewRouter(cfg, logger, handlers)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.Config) []option.ClientOption {
	if cfg.FirebaseCredFile == "" {
		return nil
	}

	cred := cfg.FirebaseCredFile
	// Allow inline JSON or base64-encoded JSON in env to avoid writing a file.
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
