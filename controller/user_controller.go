package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"autonego-backend/model"
)

type UserService interface {
	Register(ctx context.Context, name, email string) (*model.User, string, error)
}

type UserController struct {
	usecase UserService
}

func NewUserController(usecase UserService) *UserController {
	return &UserController{usecase: usecase}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Register creates or logs in a seller account and returns a session token.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		http.Error(w, "name and email are required", http.StatusBadRequest)
		return
	}

	user, token, err := c.usecase.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
