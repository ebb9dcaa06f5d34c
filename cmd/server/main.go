package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"vidya_assessment/internal/database"
	"vidya_assessment/internal/global"
	"vidya_assessment/internal/logger"
	"vidya_assessment/internal/worker"
)

// initLogger configures the logging system before anything else runs.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// resolvePath resolves a relative path against the repository root (the
// directory holding config/env).
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// serve starts the Fiber server, with TLS when configured.
func serve(app *fiber.App) {
	cfg := global.ServerConfig
	address := cfg.Address
	log := logger.GetAppLogger()

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			log.Fatalf("Error loading TLS certificate: %v", err)
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Error creating listener: %v", err)
		}

		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(map[string]interface{}{
			"address": address,
			"cert":    certPath,
		}).Info("Starting server with HTTPS/TLS")

		if err := app.Listener(tlsListener); err != nil {
			log.Fatalf("Error in Fiber Listener with TLS: %v", err)
		}
		return
	}

	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting server with HTTP")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

func main() {
	initLogger()

	InitGlobal()
	InitRegistry()

	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	queueWorker, err := worker.NewRatingQueueWorker(
		time.Duration(cfg.RatingQueueInterval)*time.Second,
		cfg.RatingQueueBatchSize,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create rating queue worker, continuing without async rating")
	} else {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("[RATING_QUEUE] Worker goroutine panic")
				}
			}()
			queueWorker.Start(workerCtx)
		}()
	}

	// Shut the worker down and close Mongo on SIGINT/SIGTERM.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signals
		log.WithField("signal", sig.String()).Info("Shutting down")
		cancelWorker()
		database.CloseInstance(global.MongoDB_Session)
		os.Exit(0)
	}()

	app := InitFiberApp()
	serve(app)
}
