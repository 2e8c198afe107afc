package item_api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fullstack-starter/internal/database"
	"fullstack-starter/internal/items"
	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/utils"
)

type Handler struct {
	ItemService *items.ItemService
	Logger      *logger.Logger
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	item, err := h.ItemService.AddItem(req.Name)
	switch {
	case err == nil:
	case errors.Is(err, items.ErrEmptyName):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid item", err.Error()))
		return
	case database.IsUniqueViolation(err):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("Item already exists", err.Error()))
		return
	default:
		h.Logger.Error("ITEM", fmt.Sprintf("Failed to create item: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to create item", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("Item created", item))
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	list, err := h.ItemService.ListItems()
	if err != nil {
		h.Logger.Error("ITEM", fmt.Sprintf("Failed to list items: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to list items", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Items", list))
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	err := h.ItemService.RemoveItem(name)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("Item not found", name))
		return
	default:
		h.Logger.Error("ITEM", fmt.Sprintf("Failed to delete item: %v", err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse("Failed to delete item", err.Error()))
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Item deleted", nil))
}
