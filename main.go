// File: notarius/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notarius/config"
	"notarius/cron"
	"notarius/database"
	bookingRepo "notarius/database/repository/booking"
	"notarius/handlers"
	"notarius/middleware"
	"notarius/models"
	"notarius/routes"
	"notarius/services/booking"
	"notarius/services/distance"
	"notarius/services/notification"
	"notarius/services/pricing"
	"notarius/services/reservation"
	"notarius/services/scheduling"
	"notarius/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitHoldCache()
	utils.InitCache()

	profiles := models.NewProfileCatalog(models.DefaultProfiles())
	cacheKV := utils.NewRedisKV(utils.GetCacheClient())

	// Calendar source mode is resolved once here, not per request.
	var source scheduling.CalendarSource
	switch config.AppConfig.CalendarSource {
	case "remote":
		source = scheduling.NewRemoteSource(
			&http.Client{Timeout: time.Duration(config.AppConfig.ProviderTimeoutSec) * time.Second},
			config.AppConfig.CalendarURL,
			config.AppConfig.CalendarID,
			profiles,
			cacheKV,
			config.AppConfig.CalFallbackOnEmpty,
		)
	default:
		source = scheduling.NewRuleBasedSource(profiles)
	}

	bookings := bookingRepo.NewMongoBookingRepo()
	holds := reservation.NewRegistry(
		utils.NewRedisKV(utils.GetHoldCacheClient()),
		time.Duration(config.AppConfig.HoldTTLMin)*time.Minute,
	)

	availability := &scheduling.AvailabilityEngine{
		Source:        source,
		Bookings:      bookings,
		Holds:         holds,
		BufferMinutes: config.AppConfig.ConflictBufferMin,
	}

	providerClient := &http.Client{
		Timeout: time.Duration(config.AppConfig.ProviderTimeoutSec) * time.Second,
	}
	resolver := distance.NewResolver(
		[]distance.Stage{
			&distance.RoutingStage{
				Client:  providerClient,
				BaseURL: config.AppConfig.RoutingAPIURL,
				APIKey:  config.AppConfig.RoutingAPIKey,
			},
			&distance.GeocodeStage{
				Client:         providerClient,
				BaseURL:        config.AppConfig.GeocodeAPIURL,
				APIKey:         config.AppConfig.GeocodeAPIKey,
				MinutesPerMile: config.AppConfig.MinutesPerMile,
			},
			&distance.HeuristicStage{
				BasePostalCode: config.AppConfig.BasePostalCode,
				NominalMiles:   config.AppConfig.NominalDistanceMi,
				SameZipMinimum: config.AppConfig.SameZipMinimumMi,
				MinutesPerMile: config.AppConfig.MinutesPerMile,
			},
		},
		time.Duration(config.AppConfig.ProviderTimeoutSec)*time.Second,
		cacheKV,
	)

	promotions := pricing.NewStaticPromotions([]*models.Promotion{
		{Code: "WELCOME10", Kind: models.PromoFixed, Amount: 10,
			ExpiresAt: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 500},
		{Code: "LOYAL15", Kind: models.PromoPercent, Amount: 15,
			ExpiresAt: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), UsesRemaining: 200},
	})

	engine := &booking.DefaultBookingEngine{
		Availability: availability,
		Holds:        holds,
		Distance:     resolver,
		Bookings:     bookings,
		Profiles:     profiles,
		Promotions:   promotions,
		Pricing: pricing.Config{
			EveningCutoffHour: config.AppConfig.EveningCutoffHour,
			WeekendSurcharge:  config.AppConfig.WeekendSurcharge,
			EveningSurcharge:  config.AppConfig.EveningSurcharge,
			RushWindow:        time.Duration(config.AppConfig.RushWindowHours) * time.Hour,
			RushSurcharge:     config.AppConfig.RushSurcharge,
			MaxPromoDiscount:  config.AppConfig.MaxPromoDiscount,
		},
		Notify:      notification.NewEnqueuer(),
		BaseAddress: config.AppConfig.BaseAddress,
		HoldTTL:     time.Duration(config.AppConfig.HoldTTLMin) * time.Minute,
	}

	cron.InitNotifyWorker(notification.LogNotifier{})
	utils.StartHealthMonitor(database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	bookingHandler := handlers.NewBookingHandler(engine)
	routes.RegisterBookingRoutes(router, bookingHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on port %s", config.AppConfig.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
}
