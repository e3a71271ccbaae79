package handlers

import (
	"skimmer/internal/app"
	customerController "skimmer/internal/controllers/customers"
	"skimmer/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CustomerHandler struct {
	Handler
	customerController customerController.CustomerControllerInterface
}

func NewCustomerHandler(app app.App, router fiber.Router) *CustomerHandler {
	log := logger.New("handlers").File("customer_handler")
	return &CustomerHandler{
		customerController: app.Controllers.Customer,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CustomerHandler) Register() {
	customers := h.router.Group("/customers")
	customers.Get("", h.listCustomers)
	customers.Post("", h.createCustomer)
	customers.Get("/:id", h.getCustomer)
	customers.Put("/:id", h.updateCustomer)
	customers.Delete("/:id", h.deleteCustomer)
	customers.Get("/:id/history", h.getCustomerHistory)
}

func (h *CustomerHandler) listCustomers(c *fiber.Ctx) error {
	filters := models.CustomerFilters{
		Search:       c.Query("search"),
		BillingModel: c.Query("billing_model"),
		Limit:        c.QueryInt("limit"),
		Offset:       c.QueryInt("offset"),
	}

	customers, err := h.customerController.List(c.UserContext(), filters)
	if err != nil {
		return respondError(c, err,
			customerController.ErrValidation, customerController.ErrNotFound,
			"Failed to list customers")
	}

	return c.JSON(fiber.Map{"customers": customers})
}

func (h *CustomerHandler) getCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	customer, err := h.customerController.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err,
			customerController.ErrValidation, customerController.ErrNotFound,
			"Failed to get customer")
	}

	return c.JSON(fiber.Map{"customer": customer})
}

func (h *CustomerHandler) createCustomer(c *fiber.Ctx) error {
	var req customerController.CustomerCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	customer, err := h.customerController.Create(c.UserContext(), &req)
	if err != nil {
		return respondError(c, err,
			customerController.ErrValidation, customerController.ErrNotFound,
			"Failed to create customer")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"customer": customer})
}

func (h *CustomerHandler) updateCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	var req customerController.CustomerUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	customer, err := h.customerController.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err,
			customerController.ErrValidation, customerController.ErrNotFound,
			"Failed to update customer")
	}

	return c.JSON(fiber.Map{"customer": customer})
}

func (h *CustomerHandler) deleteCustomer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	if err := h.customerController.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err,
			customerController.ErrValidation, customerController.ErrNotFound,
			"Failed to delete customer")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *CustomerHandler) getCustomerHistory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid customer ID",
		})
	}

	history, err := h.customerController.History(c.UserContext(), id, c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err,
			customerController.ErrValidation, customerController.ErrNotFound,
			"Failed to get customer history")
	}

	return c.JSON(fiber.Map{"history": history})
}
