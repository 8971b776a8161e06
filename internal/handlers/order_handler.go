package handlers

import (
	"log"

	"cramazon/internal/models"
	"cramazon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *services.OrderService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. Reads
// are public; mutations require a token.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", auth, h.HandleCreateOrder)
	orderRoutes.Patch("/:id", auth, h.HandleUpdateOrder)
	orderRoutes.Delete("/:id", auth, h.HandleDeleteOrder)
}

// HandleGetOrders retrieves all orders with their user and item.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetAllOrders(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadID(c)
	}

	order, err := h.orderService.GetOrderByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// CreateOrderRequest represents the request body for creating an order.
// userId is accepted for wire compatibility but must match the
// authenticated caller when present.
type CreateOrderRequest struct {
	Quantity int  `json:"quantity" validate:"required,gt=0"`
	UserID   uint `json:"userId"`
	ItemID   uint `json:"itemId" validate:"required"`
}

// HandleCreateOrder creates a new order owned by the caller.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order := &models.Order{
		Quantity: req.Quantity,
		UserID:   req.UserID,
		ItemID:   req.ItemID,
	}
	if err := h.orderService.CreateOrder(c.UserContext(), currentUser(c), order); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrderRequest represents the request body for updating an order.
// Zero fields are left unchanged.
type UpdateOrderRequest struct {
	Quantity int  `json:"quantity" validate:"omitempty,gt=0"`
	UserID   uint `json:"userId"`
	ItemID   uint `json:"itemId"`
}

// HandleUpdateOrder updates an order owned by the caller.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadID(c)
	}

	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	order, err := h.orderService.UpdateOrder(c.UserContext(), currentUser(c), id, req.Quantity, req.UserID, req.ItemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an order owned by the caller and returns the
// deleted record.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadID(c)
	}

	order, err := h.orderService.DeleteOrder(c.UserContext(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
