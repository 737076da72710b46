package handler

import (
	"net/http"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/service"
)

func (rt *Router) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := rt.users.GetAll(r.Context())
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (rt *Router) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid user id")
		return
	}

	user, err := rt.users.GetByID(r.Context(), id)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (rt *Router) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if err := decodeBody(r, &user); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}
	if user.Username == "" {
		rt.respondBadRequest(w, "username is required")
		return
	}

	created, err := rt.users.Create(r.Context(), user)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// userPatchRequest mirrors service.UserPatch on the wire; absent fields stay
// untouched.
type userPatchRequest struct {
	Username       *string         `json:"username"`
	Email          *string         `json:"email"`
	FirstName      *string         `json:"first_name"`
	LastName       *string         `json:"last_name"`
	Phone          *string         `json:"phone"`
	Address        *domain.Address `json:"address"`
	Role           *string         `json:"role"`
	Department     *string         `json:"department"`
	Admin          *bool           `json:"admin"`
	Representative *bool           `json:"representative"`
}

func (rt *Router) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid user id")
		return
	}

	var req userPatchRequest
	if err := decodeBody(r, &req); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}

	updated, err := rt.users.Update(r.Context(), id, service.UserPatch{
		Username:       req.Username,
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Address:        req.Address,
		Role:           req.Role,
		Department:     req.Department,
		Admin:          req.Admin,
		Representative: req.Representative,
	})
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (rt *Router) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid user id")
		return
	}

	deleted, err := rt.users.Delete(r.Context(), id)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}
