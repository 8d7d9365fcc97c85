// Package handler contains the echo request handlers.
package handler

import (
	"log/slog"
	"net/http"

	"restock/internal/delivery/http/response"
	"restock/internal/domain/entity"
	"restock/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ItemHandlerParams holds dependencies for ItemHandler, injected by Fx.
type ItemHandlerParams struct {
	fx.In

	ItemUC usecase.ItemUsecase
	Logger *slog.Logger
}

// ItemHandler holds dependencies for item-related handlers
type ItemHandler struct {
	itemUC usecase.ItemUsecase
	logger *slog.Logger
}

// NewItemHandler is the constructor for ItemHandler
func NewItemHandler(params ItemHandlerParams) *ItemHandler {
	return &ItemHandler{
		itemUC: params.ItemUC,
		logger: params.Logger,
	}
}

// CaptureRequest represents the request body for free-text item capture
type CaptureRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// AddItemRequest represents the request body for a direct single-item add
type AddItemRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Category string `json:"category,omitempty"`
	Urgency  string `json:"urgency,omitempty"`
}

// UpdateItemRequest represents the request body for field updates
type UpdateItemRequest struct {
	Urgency *string `json:"urgency,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// CaptureItems handles free-text capture of one or more items
func (h *ItemHandler) CaptureItems(c echo.Context) error {
	var req CaptureRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid capture input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	results, err := h.itemUC.ParseAndAddItems(c.Request().Context(), req.UserID, req.Text)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, results, "Items captured successfully")
}

// AddItem handles a direct single-item add
func (h *ItemHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid item input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.AddItemInput{
		UserID: req.UserID,
		Name:   req.Name,
	}
	if req.Category != "" {
		category := entity.Category(req.Category)
		input.Category = &category
	}
	if req.Urgency != "" {
		urgency := entity.Urgency(req.Urgency)
		input.Urgency = &urgency
	}

	result, err := h.itemUC.AddItem(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	statusCode := http.StatusCreated
	message := "Item added successfully"
	if !result.IsNew {
		statusCode = http.StatusOK
		message = "Item already captured recently"
	}

	return response.Success(c, statusCode, result, message)
}

// ListItems handles retrieving the user's active items
func (h *ItemHandler) ListItems(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return response.BadRequest(c, "VALIDATION_ERROR", "user_id query parameter is required")
	}

	var category *entity.Category
	if raw := c.QueryParam("category"); raw != "" {
		parsed := entity.Category(raw)
		category = &parsed
	}

	items, err := h.itemUC.GetActiveItems(c.Request().Context(), userID, c.QueryParam("sort_by"), category)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items, "Active items retrieved successfully")
}

// GetItem handles retrieving a single item
func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	item, err := h.itemUC.GetItem(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, item, "Item retrieved successfully")
}

// GetItemEvents handles retrieving an item's transition history
func (h *ItemHandler) GetItemEvents(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	events, err := h.itemUC.GetItemEvents(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events, "Item events retrieved successfully")
}

// CompleteItem handles marking an item purchased
func (h *ItemHandler) CompleteItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	item, err := h.itemUC.CompleteItem(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, item, "Item completed successfully")
}

// CancelItem handles cancelling an item
func (h *ItemHandler) CancelItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	item, err := h.itemUC.CancelItem(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, item, "Item cancelled successfully")
}

// UpdateItem handles urgency and notes updates
func (h *ItemHandler) UpdateItem(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid item ID")
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}

	if req.Urgency == nil && req.Notes == nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "at least one of urgency or notes is required")
	}

	var item *entity.Item
	if req.Urgency != nil {
		item, err = h.itemUC.UpdateUrgency(c.Request().Context(), id, entity.Urgency(*req.Urgency))
		if err != nil {
			return response.HandleAppError(c, err)
		}
	}
	if req.Notes != nil {
		item, err = h.itemUC.AddNotes(c.Request().Context(), id, *req.Notes)
		if err != nil {
			return response.HandleAppError(c, err)
		}
	}

	return response.Success(c, http.StatusOK, item, "Item updated successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
