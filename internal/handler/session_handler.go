package handler

import (
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}

	session, err := rt.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     rt.cookie.Name,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   rt.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(rt.cookie.TTL.Seconds()),
	})

	respondJSON(w, http.StatusCreated, session)
}

func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(rt.cookie.Name); err == nil {
		if err := rt.sessions.Logout(r.Context(), cookie.Value); err != nil {
			rt.respondError(w, r, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     rt.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	w.WriteHeader(http.StatusNoContent)
}
