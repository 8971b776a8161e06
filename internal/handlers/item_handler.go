package handlers

import (
	"log"

	"cramazon/internal/models"
	"cramazon/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	itemService *services.ItemService
	validate    *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app. Reads are
// public; mutations require a token.
func (h *ItemHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Post("/", auth, h.HandleCreateItem)
	itemRoutes.Patch("/:id", auth, h.HandleUpdateItem)
	itemRoutes.Delete("/:id", auth, h.HandleDeleteItem)
}

// HandleGetItems retrieves all catalog items with the orders referencing them.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.itemService.GetAllItems(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single catalog item by ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadID(c)
	}

	item, err := h.itemService.GetItemByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// ItemRequest represents the request body for creating or updating a
// catalog item.
type ItemRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image" validate:"omitempty,max=500"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Type        string  `json:"type" validate:"omitempty,max=100"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
}

// HandleCreateItem creates a new catalog item.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create item request body: %v", err)
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	item := &models.Item{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Type:        req.Type,
		Description: req.Description,
	}
	if err := h.itemService.CreateItem(c.UserContext(), currentUser(c), item); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing catalog item.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadID(c)
	}

	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	update := &models.Item{
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Stock:       req.Stock,
		Type:        req.Type,
		Description: req.Description,
	}
	item, err := h.itemService.UpdateItem(c.UserContext(), currentUser(c), id, update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes a catalog item and returns the deleted record.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return respondBadID(c)
	}

	item, err := h.itemService.DeleteItem(c.UserContext(), currentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}
