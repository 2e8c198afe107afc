package user_api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fullstack-starter/internal/database"
	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/users"
	"fullstack-starter/internal/utils"
)

type Handler struct {
	UserService *users.UserService
	Logger      *logger.Logger
}

type userRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.UserService.Register(req.Email, req.Name)
	if err != nil {
		h.writeError(w, err, "Failed to create user")
		return
	}

	h.Logger.Info("USER", fmt.Sprintf("Created user %d (%s)", user.ID, user.Email))
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("User created", user))
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.UserService.ListUsers()
	if err != nil {
		h.writeError(w, err, "Failed to list users")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("Users", list))
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(id)
	if err != nil {
		h.writeError(w, err, "Failed to get user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("User", user))
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid request body", err.Error()))
		return
	}

	user, err := h.UserService.UpdateUser(id, req.Email, req.Name)
	if err != nil {
		h.writeError(w, err, "Failed to update user")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("User updated", user))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userID(w, r)
	if !ok {
		return
	}

	if err := h.UserService.RemoveUser(id); err != nil {
		h.writeError(w, err, "Failed to delete user")
		return
	}

	h.Logger.Info("USER", fmt.Sprintf("Deleted user %d", id))
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("User deleted", nil))
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("Invalid user id", raw))
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse(message, err.Error()))
	case errors.Is(err, sql.ErrNoRows):
		utils.WriteJSON(w, http.StatusNotFound, utils.ErrorResponse("User not found", err.Error()))
	case database.IsUniqueViolation(err):
		utils.WriteJSON(w, http.StatusConflict, utils.ErrorResponse("Email already registered", err.Error()))
	default:
		h.Logger.Error("USER", fmt.Sprintf("%s: %v", message, err))
		utils.WriteJSON(w, http.StatusInternalServerError, utils.ErrorResponse(message, err.Error()))
	}
}
