package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"plantshop/models"
	"plantshop/stores"
	"plantshop/utils"
)

// cartView is what every cart endpoint responds with: the lines plus the
// derived subtotal.
func cartView(s *stores.Session) map[string]interface{} {
	return map[string]interface{}{
		"items":    s.Cart.Items(),
		"subtotal": s.Cart.Subtotal(),
	}
}

func GetCart(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	utils.SendJSONResponse(w, http.StatusOK, cartView(s))
}

func AddCartItem(w http.ResponseWriter, r *http.Request) {
	var item models.CartItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid cart item")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	if item.ID == "" {
		utils.HandleError(w, http.StatusBadRequest, "Item id is required")
		return
	}

	s := currentSession(w, r)
	s.Cart.AddItem(item)
	utils.SendJSONResponse(w, http.StatusOK, cartView(s))
}

func UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.HandleError(w, http.StatusBadRequest, "Item id is required")
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.HandleError(w, http.StatusBadRequest, "Invalid quantity payload")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}

	// The UI disables decrementing below one; reject here as well
	if body.Quantity < 1 {
		utils.HandleError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}

	s := currentSession(w, r)
	if err := s.Cart.UpdateQuantity(models.ID(id), body.Quantity); err != nil {
		if errors.Is(err, stores.ErrItemNotFound) {
			utils.HandleError(w, http.StatusNotFound, "Item not in cart")
			return
		}
		utils.HandleError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, cartView(s))
}

func RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.HandleError(w, http.StatusBadRequest, "Item id is required")
		return
	}

	s := currentSession(w, r)
	s.Cart.RemoveItem(models.ID(id))
	utils.SendJSONResponse(w, http.StatusOK, cartView(s))
}

// ClearCart empties the cart, e.g. after checkout confirms an order.
func ClearCart(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	s.Cart.Clear()
	utils.SendJSONResponse(w, http.StatusOK, cartView(s))
}
