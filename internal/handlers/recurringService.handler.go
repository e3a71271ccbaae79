package handlers

import (
	"skimmer/internal/app"
	recurringController "skimmer/internal/controllers/recurring"
	"skimmer/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecurringServiceHandler struct {
	Handler
	recurringController recurringController.RecurringServiceControllerInterface
}

func NewRecurringServiceHandler(app app.App, router fiber.Router) *RecurringServiceHandler {
	log := logger.New("handlers").File("recurring_service_handler")
	return &RecurringServiceHandler{
		recurringController: app.Controllers.Recurring,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RecurringServiceHandler) Register() {
	recurring := h.router.Group("/recurring-services")
	recurring.Get("", h.listRecurringServices)
	recurring.Post("", h.createRecurringService)
	recurring.Get("/:id", h.getRecurringService)
	recurring.Put("/:id", h.updateRecurringService)
	recurring.Delete("/:id", h.deleteRecurringService)
	recurring.Post("/:id/activate", h.activateRecurringService)
	recurring.Post("/:id/deactivate", h.deactivateRecurringService)
}

func (h *RecurringServiceHandler) listRecurringServices(c *fiber.Ctx) error {
	filters := models.RecurringServiceFilters{
		Frequency: c.Query("frequency"),
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

	if raw := c.Query("is_active"); raw != "" {
		isActive := raw == "true"
		filters.IsActive = &isActive
	}

	recurring, err := h.recurringController.List(c.UserContext(), filters)
	if err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to list recurring services")
	}

	return c.JSON(fiber.Map{"recurring_services": recurring})
}

func (h *RecurringServiceHandler) getRecurringService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recurring service ID",
		})
	}

	recurring, err := h.recurringController.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to get recurring service")
	}

	return c.JSON(fiber.Map{"recurring_service": recurring})
}

func (h *RecurringServiceHandler) createRecurringService(c *fiber.Ctx) error {
	var req recurringController.RecurringServiceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	recurring, err := h.recurringController.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to create recurring service")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"recurring_service": recurring})
}

func (h *RecurringServiceHandler) updateRecurringService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recurring service ID",
		})
	}

	var req recurringController.RecurringServiceUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	recurring, err := h.recurringController.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to update recurring service")
	}

	return c.JSON(fiber.Map{"recurring_service": recurring})
}

func (h *RecurringServiceHandler) deleteRecurringService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recurring service ID",
		})
	}

	if err := h.recurringController.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to delete recurring service")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *RecurringServiceHandler) activateRecurringService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recurring service ID",
		})
	}

	recurring, err := h.recurringController.Activate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to activate recurring service")
	}

	return c.JSON(fiber.Map{"recurring_service": recurring})
}

func (h *RecurringServiceHandler) deactivateRecurringService(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recurring service ID",
		})
	}

	recurring, err := h.recurringController.Deactivate(c.UserContext(), id)
	if err != nil {
		return respondError(c, err,
			recurringController.ErrValidation, recurringController.ErrNotFound,
			"Failed to deactivate recurring service")
	}

	return c.JSON(fiber.Map{"recurring_service": recurring})
}
