// Package stores holds the per-browser-session state of the storefront:
// cart, wishlist, auth mirror and drawer visibility. Durable slices go
// through the local storage adapter; the remote API is only reached for
// sign-out and wishlist sync.
package stores

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"

	"plantshop/localstore"
	"plantshop/models"
)

// Local storage keys. The auth store owns the session credential keys; each
// store owns its own persisted slice.
const (
	keyToken       = "token"
	keyAdminToken  = "admin_token"
	keyVendorToken = "vendor_token"
	keyUserID      = "userId"
	keyAuthStorage = "auth-storage"
	keyCartStorage = "cart-storage"
)

// RemoteAPI is what the stores need from the remote storefront service.
type RemoteAPI interface {
	LogoutAdmin(ctx context.Context) error
	LogoutVendor(ctx context.Context) error
	LogoutUser(ctx context.Context) error
	FetchWishlist(ctx context.Context, userID models.ID) ([]models.WishlistItem, error)
	AddWishlistItem(ctx context.Context, productID, userID models.ID) error
	RemoveWishlistItem(ctx context.Context, productID, userID models.ID) error
}

// Session bundles the four stores of one browser session.
type Session struct {
	ID       string
	Auth     *AuthStore
	Cart     *CartStore
	Wishlist *WishlistStore
	UI       *UIStore
}

// Manager creates and disposes sessions. Stores are explicit per-session
// objects, never package-level singletons.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    localstore.Store
	api      RemoteAPI
}

func NewManager(store localstore.Store, api RemoteAPI) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		store:    store,
		api:      api,
	}
}

// Create builds a fresh session with a new id.
func (m *Manager) Create() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(uuid.NewString())
}

// GetOrCreate returns the live session for the id, rebuilding it from the
// persisted slices after a restart.
func (m *Manager) GetOrCreate(sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s
	}
	return m.create(sessionID)
}

// create wires one session's stores together. Caller holds m.mu.
func (m *Manager) create(sessionID string) *Session {
	kv := m.store.Namespace(sessionID)

	wishlist := NewWishlistStore(m.api)
	auth := NewAuthStore(kv, m.api, wishlist)
	s := &Session{
		ID:       sessionID,
		Auth:     auth,
		Cart:     NewCartStore(kv),
		Wishlist: wishlist,
		UI:       NewUIStore(),
	}

	// The auth store only publishes the user change; the wishlist fetch is
	// triggered here, fire-and-forget relative to Login returning.
	auth.OnUserChanged(func(userID models.ID) {
		go func() {
			if err := wishlist.Fetch(context.Background(), userID); err != nil {
				log.Printf("session %s: wishlist fetch after login: %v", sessionID, err)
			}
		}()
	})

	m.sessions[sessionID] = s
	return s
}

// Dispose drops the session's live stores and its persisted keys.
func (m *Manager) Dispose(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
	return m.store.DropSession(ctx, sessionID)
}

// SessionIDs lists the live sessions.
func (m *Manager) SessionIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Keys(m.sessions)
}
