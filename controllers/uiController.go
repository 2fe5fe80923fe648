package controllers

import (
	"net/http"

	"plantshop/stores"
	"plantshop/utils"
)

func validDrawer(name string) bool {
	return name == stores.DrawerCart || name == stores.DrawerWishlist
}

func uiView(s *stores.Session) map[string]bool {
	cartOpen, wishlistOpen := s.UI.Snapshot()
	return map[string]bool{
		"cartOpen":     cartOpen,
		"wishlistOpen": wishlistOpen,
	}
}

func GetUIState(w http.ResponseWriter, r *http.Request) {
	s := currentSession(w, r)
	utils.SendJSONResponse(w, http.StatusOK, uiView(s))
}

func OpenDrawer(w http.ResponseWriter, r *http.Request) {
	setDrawer(w, r, true)
}

func CloseDrawer(w http.ResponseWriter, r *http.Request) {
	setDrawer(w, r, false)
}

func ToggleDrawer(w http.ResponseWriter, r *http.Request) {
	drawer := r.PathValue("drawer")
	if !validDrawer(drawer) {
		utils.HandleError(w, http.StatusBadRequest, "Unknown drawer")
		return
	}

	s := currentSession(w, r)
	s.UI.Toggle(drawer)
	utils.SendJSONResponse(w, http.StatusOK, uiView(s))
}

func setDrawer(w http.ResponseWriter, r *http.Request, open bool) {
	drawer := r.PathValue("drawer")
	if !validDrawer(drawer) {
		utils.HandleError(w, http.StatusBadRequest, "Unknown drawer")
		return
	}

	s := currentSession(w, r)
	s.UI.Set(drawer, open)
	utils.SendJSONResponse(w, http.StatusOK, uiView(s))
}
