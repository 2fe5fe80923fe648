package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"plantshop/models"
	"plantshop/stores"
	"plantshop/utils"
)

// wishlistUser extracts the logged-in user's id, or replies 401.
func wishlistUser(w http.ResponseWriter, s *stores.Session) (models.ID, bool) {
	user, authenticated := s.Auth.Snapshot()
	if !authenticated || user == nil || user.ID == "" {
		utils.HandleError(w, http.StatusUnauthorized, "Sign in to use the wishlist")
		return "", false
	}
	return user.ID, true
}

func GetWishlist(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	utils.SendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"items": s.Wishlist.Items(),
	})
}

func AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.HandleError(w, http.StatusBadRequest, "Product id is required")
		return
	}

	// Optional product details for the local mirror
	var product models.WishlistItem
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
			product = models.WishlistItem{}
		}
	}
	product.ID = models.ID(id)

	s := currentSession(w, r)
	userID, ok := wishlistUser(w, s)
	if !ok {
		return
	}

	if err := s.Wishlist.Add(r.Context(), product, userID); err != nil {
		utils.HandleError(w, http.StatusBadGateway, "Failed to update wishlist")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"items": s.Wishlist.Items(),
	})
}

func RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		utils.HandleError(w, http.StatusBadRequest, "Product id is required")
		return
	}

	s := currentSession(w, r)
	userID, ok := wishlistUser(w, s)
	if !ok {
		return
	}

	if err := s.Wishlist.Remove(r.Context(), models.ID(id), userID); err != nil {
		utils.HandleError(w, http.StatusBadGateway, "Failed to update wishlist")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"items": s.Wishlist.Items(),
	})
}

// RefreshWishlist re-fetches the logged-in user's wishlist from the remote
// service, replacing the local mirror.
func RefreshWishlist(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	userID, ok := wishlistUser(w, s)
	if !ok {
		return
	}

	if err := s.Wishlist.Fetch(r.Context(), userID); err != nil {
		utils.HandleError(w, http.StatusBadGateway, "Failed to fetch wishlist")
		log.Println(utils.ErrorWithTrace(err, err.Error()))
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"items": s.Wishlist.Items(),
	})
}
