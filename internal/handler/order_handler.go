package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/service"
)

// dateOnly is the short form accepted for the from/to query parameters;
// RFC 3339 timestamps work as well.
const dateOnly = "2006-01-02"

// rangeEnd bounds an open-ended date range.
var rangeEnd = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

func (rt *Router) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var userID *int64
	if raw := q.Get("user_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			rt.respondBadRequest(w, "invalid user_id")
			return
		}
		userID = &id
	}

	fromRaw, toRaw := q.Get("from"), q.Get("to")
	if fromRaw == "" && toRaw == "" && userID == nil {
		orders, err := rt.orders.GetAll(r.Context())
		if err != nil {
			rt.respondError(w, r, err)
			return
		}
		respondJSON(w, http.StatusOK, orders)
		return
	}

	var from, to time.Time
	to = rangeEnd
	if fromRaw != "" {
		parsed, err := parseDateParam(fromRaw, false)
		if err != nil {
			rt.respondBadRequest(w, "invalid from date")
			return
		}
		from = parsed
	}
	if toRaw != "" {
		parsed, err := parseDateParam(toRaw, true)
		if err != nil {
			rt.respondBadRequest(w, "invalid to date")
			return
		}
		to = parsed
	}

	orders, err := rt.orders.GetByDateRange(r.Context(), from, to, userID)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// parseDateParam accepts YYYY-MM-DD or RFC 3339. A date-only upper bound is
// stretched to the end of its day so the range stays inclusive.
func parseDateParam(value string, upperBound bool) (time.Time, error) {
	if t, err := time.Parse(dateOnly, value); err == nil {
		if upperBound {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func (rt *Router) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid order id")
		return
	}

	order, err := rt.orders.GetByID(r.Context(), id)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

func (rt *Router) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := decodeBody(r, &order); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}
	if order.UserID <= 0 {
		rt.respondBadRequest(w, "user_id is required")
		return
	}

	created, err := rt.orders.Create(r.Context(), order)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (rt *Router) handleUpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid order id")
		return
	}

	var order domain.Order
	if err := decodeBody(r, &order); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}

	updated, err := rt.orders.Update(r.Context(), id, order)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (rt *Router) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid order id")
		return
	}

	deleted, err := rt.orders.Delete(r.Context(), id)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}

type addLineRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Title     string  `json:"title"`
	ImageURL  string  `json:"image_url"`
}

func (rt *Router) handleAddOrderLine(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid order id")
		return
	}

	var req addLineRequest
	if err := decodeBody(r, &req); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}

	line, err := rt.orders.AddProduct(r.Context(), orderID, service.AddProductInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Title:     req.Title,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, line)
}

type linePatchRequest struct {
	Quantity *int64   `json:"quantity"`
	Price    *float64 `json:"price"`
	Title    *string  `json:"title"`
}

func (rt *Router) handleUpdateOrderLine(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid order id")
		return
	}
	lineID, ok := pathID(r, "lineId")
	if !ok {
		rt.respondBadRequest(w, "invalid line id")
		return
	}

	var req linePatchRequest
	if err := decodeBody(r, &req); err != nil {
		rt.respondBadRequest(w, "invalid request body")
		return
	}

	line, err := rt.orders.UpdateProduct(r.Context(), orderID, lineID, service.LinePatch{
		Quantity: req.Quantity,
		Price:    req.Price,
		Title:    req.Title,
	})
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, line)
}

func (rt *Router) handleDeleteOrderLine(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(r, "id")
	if !ok {
		rt.respondBadRequest(w, "invalid order id")
		return
	}
	lineID, ok := pathID(r, "lineId")
	if !ok {
		rt.respondBadRequest(w, "invalid line id")
		return
	}

	deleted, err := rt.orders.DeleteProduct(r.Context(), orderID, lineID)
	if err != nil {
		rt.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deleteResponse{Deleted: deleted})
}
