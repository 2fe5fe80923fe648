package stores

import (
	"context"
	"sync"

	"golang.org/x/exp/slices"

	"plantshop/models"
)

// WishlistStore mirrors the user's server-side wishlist. The mirror is only
// authoritative after a successful Fetch for the logged-in user; it is
// cleared at logout so the next account never sees the previous one's items
// while its own fetch is in flight.
type WishlistStore struct {
	mu    sync.RWMutex
	items []models.WishlistItem
	api   RemoteAPI
}

func NewWishlistStore(api RemoteAPI) *WishlistStore {
	return &WishlistStore{api: api}
}

// Fetch replaces the mirror with the remote wishlist for the user. On error
// the prior mirror is left untouched and the error is the caller's to
// handle; there is no retry.
func (w *WishlistStore) Fetch(ctx context.Context, userID models.ID) error {
	items, err := w.api.FetchWishlist(ctx, userID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = items
	return nil
}

// Add saves the product remotely first; the mirror is only updated after the
// round-trip succeeds.
func (w *WishlistStore) Add(ctx context.Context, product models.WishlistItem, userID models.ID) error {
	if err := w.api.AddWishlistItem(ctx, product.ID, userID); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	exists := slices.ContainsFunc(w.items, func(item models.WishlistItem) bool {
		return item.ID == product.ID
	})
	if !exists {
		w.items = append(w.items, product)
	}
	return nil
}

// Remove deletes the product remotely first, then from the mirror.
func (w *WishlistStore) Remove(ctx context.Context, productID, userID models.ID) error {
	if err := w.api.RemoveWishlistItem(ctx, productID, userID); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = slices.DeleteFunc(w.items, func(item models.WishlistItem) bool {
		return item.ID == productID
	})
	return nil
}

// Clear empties the mirror only; server-side data is untouched.
func (w *WishlistStore) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = nil
}

// Items returns a copy of the mirror.
func (w *WishlistStore) Items() []models.WishlistItem {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.items)
}
