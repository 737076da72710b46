package handler

import "net/http"

func (rt *Router) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := rt.products.GetAll(r.Context())
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (rt *Router) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid product id")
		return
	}

	product, err := rt.products.GetByID(r.Context(), id)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}
