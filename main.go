package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}

	fiberApp := fiber.New(fiber.Config{
		AppName:      "tahoe-night-nurse",
		ProxyHeader:  fiber.HeaderXForwardedFor,
		ErrorHandler: errorHandler(log),
	})
	fiberApp.Use(recover.New())

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Info("Shutting down")
		if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Er("failed to shut down server cleanly", err)
		}
	}()

	address := fmt.Sprintf(":%d", application.Config.ServerPort)
	log.Info("Starting server", "address", address, "environment", application.Config.Environment)
	if err := fiberApp.Listen(address); err != nil {
		log.Er("server stopped with error", err)
	}

	if err := application.Close(); err != nil {
		log.Er("failed to close application", err)
		os.Exit(1)
	}
}

// errorHandler keeps unexpected failures generic for the caller; detail
// stays in the server log.
func errorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		if fiberErr, ok := err.(*fiber.Error); ok {
			code = fiberErr.Code
		}

		if code == fiber.StatusInternalServerError {
			log.Er("unhandled request error", err, "path", c.Path())
			return c.Status(code).SendString("Something went wrong. Please try again shortly.")
		}

		return c.Status(code).SendString(err.Error())
	}
}
