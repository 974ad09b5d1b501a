package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"
	"yachtdrop-backend/lib/configutil"
	configsqlite "yachtdrop-backend/lib/configutil/sqlite"
	"yachtdrop-backend/lib/echoutil"
	"yachtdrop-backend/lib/osutil"
	"yachtdrop-backend/lib/scrapers/nautic"
	"yachtdrop-backend/lib/telemetry"
	"yachtdrop-backend/services/auth"
	authdb "yachtdrop-backend/services/auth/db"
	"yachtdrop-backend/services/checkout"
	"yachtdrop-backend/services/products"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func fatalerr(message string, err error) {
	slog.Error(message, "err", err.Error())
	os.Exit(1)
}

type ScraperConfig struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type Config struct {
	Addr     string              `json:"addr"`
	Database configsqlite.Struct `json:"database"`
	Scraper  ScraperConfig       `json:"scraper"`
}

func main() {
	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		fatalerr("failed to read config", err)
	}
	if config.Addr == "" {
		config.Addr = "0.0.0.0:8111"
	}

	slog.Info("opening database...")
	sqlite, err := config.Database.OpenDB(authdb.Schema)
	if err != nil {
		fatalerr("failed to open database", err)
	}

	client, err := nautic.NewClient(nautic.ClientOptions{
		BaseUrl: config.Scraper.BaseUrl,
		Timeout: time.Duration(config.Scraper.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		fatalerr("failed to create scraper client", err)
	}
	catalog := nautic.NewCatalog(client, nautic.CatalogOptions{})

	productService := products.NewService(client, catalog, products.Options{})
	authService := auth.NewService(sqlite)
	checkoutHandler := checkout.NewHandler(authService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = echoutil.NewValidator()
	e.Use(middleware.Recover())

	api := e.Group("/api")
	productService.RegisterRoutes(api)
	authService.RegisterRoutes(api)
	checkoutHandler.RegisterRoutes(api)

	ctx := osutil.SignalContext()

	go func() {
		slog.Info("listening...", "addr", config.Addr)
		err := e.Start(config.Addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatalerr("failed to serve", err)
		}
	}()

	tel, err := telemetry.SetupFromEnv(ctx, "cmd/server")
	if err != nil {
		slog.Warn("failed to set up telemetry", "err", err.Error())
	}
	telemetry.InstrumentPerfStats(ctx)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	e.Shutdown(shutdownCtx)
	tel.Shutdown(shutdownCtx)
}
