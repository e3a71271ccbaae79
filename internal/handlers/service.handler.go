package handlers

import (
	"context"
	"time"

	"skimmer/internal/app"
	serviceController "skimmer/internal/controllers/services"
	"skimmer/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ServiceHandler struct {
	Handler
	serviceController serviceController.ServiceControllerInterface
}

func NewServiceHandler(app app.App, router fiber.Router) *ServiceHandler {
	log := logger.New("handlers").File("service_handler")
	return &ServiceHandler{
		serviceController: app.Controllers.Service,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ServiceHandler) Register() {
	services := h.router.Group("/services")
	services.Get("", h.listServices)
	services.Post("", h.createService)
	services.Get("/:id", h.getService)
	services.Put("/:id", h.updateService)
	services.Delete("/:id", h.deleteService)
	services.Post("/:id/start", h.startService)
	services.Post("/:id/complete", h.completeService)
	services.Post("/:id/skip", h.skipService)
}

func (h *ServiceHandler) listServices(c *fiber.Ctx) error {
	filters := models.ServiceFilters{
		Status: c.Query("status"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	if raw := c.Query("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid customer_id",
			})
		}
		filters.CustomerID = &customerID
	}

	for _, q := range []struct {
		name string
		dest **time.Time
	}{
		{"start_date", &filters.StartDate},
		{"end_date", &filters.EndDate},
	} {
		if raw := c.Query(q.name); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": q.name + " must be a date in YYYY-MM-DD format",
				})
			}
			*q.dest = &parsed
		}
	}

	services, err := h.serviceController.List(c.UserContext(), filters)
	if err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			"Failed to list services")
	}

	return c.JSON(fiber.Map{"services": services})
}

func (h *ServiceHandler) getService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	service, err := h.serviceController.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			"Failed to get service")
	}

	return c.JSON(fiber.Map{"service": service})
}

func (h *ServiceHandler) createService(c *fiber.Ctx) error {
	var req serviceController.ServiceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	service, err := h.serviceController.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			"Failed to create service")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"service": service})
}

func (h *ServiceHandler) updateService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	var req serviceController.ServiceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	service, err := h.serviceController.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			"Failed to update service")
	}

	return c.JSON(fiber.Map{"service": service})
}

func (h *ServiceHandler) deleteService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	if err := h.serviceController.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			"Failed to delete service")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *ServiceHandler) startService(c *fiber.Ctx) error {
	return h.transition(c, h.serviceController.Start, "Failed to start service")
}

func (h *ServiceHandler) completeService(c *fiber.Ctx) error {
	return h.transition(c, h.serviceController.Complete, "Failed to complete service")
}

func (h *ServiceHandler) skipService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	// The body is optional; an absent or empty reason skips without a note.
	var req serviceController.SkipRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	service, err := h.serviceController.Skip(c.UserContext(), id, req.Reason)
	if err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			"Failed to skip service")
	}

	return c.JSON(fiber.Map{"service": service})
}

func (h *ServiceHandler) transition(
	c *fiber.Ctx,
	apply func(ctx context.Context, id uuid.UUID) (*models.Service, error),
	fallback string,
) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid service ID",
		})
	}

	service, err := apply(c.UserContext(), id)
	if err != nil {
		return respondError(c, err,
			serviceController.ErrValidation, serviceController.ErrNotFound,
			fallback)
	}

	return c.JSON(fiber.Map{"service": service})
}
