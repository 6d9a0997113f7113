package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roastsim/internal/handlers"
	"roastsim/internal/logger"
	"roastsim/internal/repository"
	"roastsim/internal/repository/db"
	"roastsim/internal/server"
	"roastsim/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title           Roast Simulator API
// @version         1.0
// @description     Batch coffee-roast thermal simulation under PID control.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	log := logger.Get(logger.InfoLevel)

	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(conn)
	services := service.NewService(repos)
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB opens the SQLite file named in config, creating schema as needed.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "roasts.db")
		dbPath = "roasts.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer starts the HTTP server in its own goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks on SIGINT/SIGTERM then drains the server.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
