package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"autonego-backend/controller"
	"autonego-backend/dao"
	"autonego-backend/db"
	"autonego-backend/middleware"
	"autonego-backend/pkg/cache"
	"autonego-backend/pkg/config"
	"autonego-backend/pkg/gemini"
	"autonego-backend/pkg/logger"
	"autonego-backend/usecase"
)

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := config.Load()

	// 1. DB Connection
	conn, err := db.Open(cfg.MySQLDSN)
	if err != nil {
		logger.Errorw("failed to connect to DB", "err", err)
		return
	}
	defer conn.Close()
	logger.Infow("connected to database")

	// 2. Reply synthesizer; the engine runs on templated replies without it.
	var replies usecase.ReplyGenerator
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			logger.Warnw("gemini client unavailable, using templated replies", "err", err)
		} else {
			replies = client
		}
	} else {
		logger.Warnw("GEMINI_API_KEY not set, using templated replies")
	}

	var idem usecase.IdempotencyStore
	if r := cache.NewRedis(cfg.RedisAddr, cfg.RedisPass); r != nil {
		idem = r
	}

	// 3. Dependency Injection
	listingRepo := dao.NewListingRepository(conn)
	negotiationRepo := dao.NewNegotiationRepository(conn)
	userRepo := dao.NewUserRepository(conn)

	negotiationUsecase := usecase.NewNegotiationUsecase(listingRepo, negotiationRepo, replies, idem, cfg.MaxRounds, cfg.SynthTimeout)
	listingUsecase := usecase.NewListingUsecase(listingRepo)
	userUsecase := usecase.NewUserUsecase(userRepo, cfg.JWTSecret)

	negotiationController := controller.NewNegotiationController(negotiationUsecase)
	listingController := controller.NewListingController(listingUsecase)
	userController := controller.NewUserController(userUsecase)

	// 4. Routing
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	auth := middleware.Auth(cfg.JWTSecret)
	optAuth := middleware.OptionalAuth(cfg.JWTSecret)

	r.HandleFunc("/register", userController.Register).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/listings/{id}/negotiate", negotiationController.Negotiate).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/listings/{id}", optAuth(http.HandlerFunc(listingController.Get))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/listings", optAuth(http.HandlerFunc(listingController.List))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Handle("/listings", auth(http.HandlerFunc(listingController.Create))).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/listings/{id}", auth(http.HandlerFunc(listingController.Update))).Methods(http.MethodPut, http.MethodOptions)
	r.Handle("/listings/{id}", auth(http.HandlerFunc(listingController.Deactivate))).Methods(http.MethodDelete, http.MethodOptions)
	r.Handle("/my/listings", auth(http.HandlerFunc(listingController.ListMine))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/listings/{id}/negotiations", auth(http.HandlerFunc(negotiationController.ListForListing))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle("/negotiations/{id}/finalize", auth(http.HandlerFunc(negotiationController.Finalize))).Methods(http.MethodPost, http.MethodOptions)

	// 5. Start Server
	logger.Infow("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Errorw("server stopped", "err", err)
	}
}
