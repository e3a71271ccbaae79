package handlers

import (
	"errors"
	"strings"

	"skimmer/internal/app"
	"skimmer/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) error {
	api := router.Group("/api")
	HealthHandler(router, app.Config)
	NewCustomerHandler(*app, api).Register()
	NewServiceHandler(*app, api).Register()
	NewRecurringServiceHandler(*app, api).Register()

	return nil
}

// validationMessage strips the sentinel prefix so clients see the plain
// message ("end_date must be after start_date"), not the wrapped chain.
func validationMessage(err error, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}

func respondError(c *fiber.Ctx, err error, validation, notFound error, fallback string) error {
	switch {
	case errors.Is(err, validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationMessage(err, validation),
		})
	case errors.Is(err, notFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": validationMessage(err, notFound),
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}
