package stores

import "sync"

// Drawer names accepted by the UI store.
const (
	DrawerCart     = "cart"
	DrawerWishlist = "wishlist"
)

// UIStore holds the ephemeral drawer visibility flags. Nothing here is
// persisted; a fresh session starts with both drawers closed.
type UIStore struct {
	mu           sync.Mutex
	cartOpen     bool
	wishlistOpen bool
}

func NewUIStore() *UIStore {
	return &UIStore{}
}

// Set opens or closes a drawer; unknown names are ignored.
func (u *UIStore) Set(drawer string, open bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch drawer {
	case DrawerCart:
		u.cartOpen = open
	case DrawerWishlist:
		u.wishlistOpen = open
	}
}

// Toggle flips a drawer; unknown names are ignored.
func (u *UIStore) Toggle(drawer string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	switch drawer {
	case DrawerCart:
		u.cartOpen = !u.cartOpen
	case DrawerWishlist:
		u.wishlistOpen = !u.wishlistOpen
	}
}

// Snapshot returns both flags.
func (u *UIStore) Snapshot() (cartOpen, wishlistOpen bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.cartOpen, u.wishlistOpen
}
