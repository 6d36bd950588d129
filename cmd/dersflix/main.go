package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/btmxh/dersflix/internal/auth"
	"github.com/btmxh/dersflix/internal/db"
	"github.com/btmxh/dersflix/internal/errs"
	"github.com/btmxh/dersflix/internal/html"
	"github.com/btmxh/dersflix/internal/mailer"
	"github.com/btmxh/dersflix/internal/media"
	"github.com/btmxh/dersflix/internal/middlewares"
	"github.com/btmxh/dersflix/internal/routes"
	"github.com/btmxh/dersflix/internal/services"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func loadSiteSettings() error {
	handler := errs.NewCapturingErrorHandler()
	tx := db.BeginTx(handler)
	if tx == nil {
		return handler.Errors[0].Err
	}
	defer tx.Rollback()

	settings, hasErr := services.GetSiteSettings(tx)
	if hasErr {
		return handler.Errors[0].Err
	}

	html.SetSiteSettings(settings)
	slog.Info("Site settings loaded", slog.String("name", settings.SiteName), slog.String("color", settings.ThemeColor))
	return nil
}

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		fmt.Println("Unable to load .env file:", err)
		os.Exit(1)
	}

	logLevel := slog.LevelDebug
	if levelStr, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if err = logLevel.UnmarshalText([]byte(levelStr)); err != nil {
			fmt.Println("(warn) Invalid value for LOG_LEVEL environment variable")
		}
	}

	logHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevel,
	})

	slog.SetDefault(slog.New(logHandler))

	dbUrl, ok := os.LookupEnv("DATABASE_URL")
	if !ok {
		panic("Required environment variable DATABASE_URL not set")
	}

	err = db.InitDB(dbUrl)
	if err != nil {
		panic(err)
	}
	defer db.CloseDB()
	slog.Info("Database connection initialized")

	if err = db.Migrate(); err != nil {
		panic(err)
	}

	if err = loadSiteSettings(); err != nil {
		panic(err)
	}

	if err = mailer.InitMailer(); err != nil {
		panic(err)
	}

	if err = auth.InitJWT(); err != nil {
		panic(err)
	}

	media.InitMetadataResolvers(context.Background())

	addr, ok := os.LookupEnv("DERSFLIX_ADDR")
	if !ok {
		addr = "localhost:6972"
		slog.Info("DERSFLIX_ADDR not provided, using default '" + addr + "'")
	}

	cert, hasCert := os.LookupEnv("HTTPS_CERT_FILE")
	key, hasKey := os.LookupEnv("HTTPS_KEY_FILE")

	router := middlewares.NewLogMiddleware(routes.CreateMainRouter())

	if hasKey && hasCert {
		slog.Info("Starting HTTPS server", slog.String("addr", addr), slog.String("cert", cert), slog.String("key", key))
		err = http.ListenAndServeTLS(addr, cert, key, router)
	} else {
		slog.Info("Starting HTTP server", slog.String("addr", addr))
		err = http.ListenAndServe(addr, router)
	}

	if err != nil {
		panic(err)
	}
}
