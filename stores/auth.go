package stores

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"plantshop/localstore"
	"plantshop/models"
)

// AuthStore is the single source of truth for who is logged in, and the
// orchestrator of the cross-store side effects at session boundaries.
type AuthStore struct {
	mu            sync.Mutex
	user          *models.User
	authenticated bool

	kv       localstore.KV
	api      RemoteAPI
	wishlist *WishlistStore

	onUserChanged []func(userID models.ID)
}

// authSnapshot is the persisted slice: user and flag only, never methods or
// wiring.
type authSnapshot struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// NewAuthStore restores the persisted auth-storage slice, if any.
func NewAuthStore(kv localstore.KV, api RemoteAPI, wishlist *WishlistStore) *AuthStore {
	a := &AuthStore{kv: kv, api: api, wishlist: wishlist}
	raw, err := kv.Get(context.Background(), keyAuthStorage)
	if err == nil {
		var snap authSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			log.Printf("auth: corrupt persisted slice dropped: %v", err)
		} else {
			a.user = snap.User
			a.authenticated = snap.IsAuthenticated
		}
	}
	return a
}

// OnUserChanged registers a subscriber for the user-changed event published
// on login. Subscribers only run when the user carries a usable id.
func (a *AuthStore) OnUserChanged(fn func(userID models.ID)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUserChanged = append(a.onUserChanged, fn)
}

// Login sets the authenticated state and persists the credentials. It cannot
// fail: persistence problems only cost durability and are logged. Calling it
// while already authenticated simply overwrites the session.
func (a *AuthStore) Login(user models.User, token string) {
	a.mu.Lock()
	u := user
	a.user = &u
	a.authenticated = true
	a.persistSnapshot()

	ctx := context.Background()
	if user.ID != "" {
		if err := a.kv.Set(ctx, keyUserID, string(user.ID)); err != nil {
			log.Printf("auth: persist userId: %v", err)
		}
	}
	if token != "" {
		if err := a.kv.Set(ctx, roleTokenKey(user.Role), token); err != nil {
			log.Printf("auth: persist session token: %v", err)
		}
	}
	subscribers := a.onUserChanged
	a.mu.Unlock()

	if user.ID == "" {
		return
	}
	for _, fn := range subscribers {
		fn(user.ID)
	}
}

// Logout tears the session down. The remote sign-out is best-effort: a
// failed call is logged and never blocks the local cleanup, so the caller
// always ends up anonymous. Safe to call while already anonymous.
func (a *AuthStore) Logout(ctx context.Context) {
	a.mu.Lock()
	role := models.RoleCustomer
	if a.user != nil && a.user.Role != "" {
		role = a.user.Role
	}
	a.mu.Unlock()

	var err error
	switch role {
	case models.RoleAdmin:
		err = a.api.LogoutAdmin(ctx)
	case models.RoleVendor:
		err = a.api.LogoutVendor(ctx)
	default:
		err = a.api.LogoutUser(ctx)
	}
	if err != nil {
		log.Printf("auth: remote sign-out failed, continuing local teardown: %v", err)
	}

	for _, key := range []string{keyToken, keyAdminToken, keyVendorToken, keyUserID} {
		if err := a.kv.Remove(ctx, key); err != nil {
			log.Printf("auth: remove %s: %v", key, err)
		}
	}

	a.wishlist.Clear()

	a.mu.Lock()
	a.user = nil
	a.authenticated = false
	a.persistSnapshot()
	a.mu.Unlock()
}

// Snapshot returns the current user (copy) and authentication flag.
func (a *AuthStore) Snapshot() (*models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil, a.authenticated
	}
	u := *a.user
	return &u, a.authenticated
}

// persistSnapshot writes the auth-storage slice. Caller holds a.mu.
func (a *AuthStore) persistSnapshot() {
	raw, err := json.Marshal(authSnapshot{User: a.user, IsAuthenticated: a.authenticated})
	if err != nil {
		log.Printf("auth: marshal persisted slice: %v", err)
		return
	}
	if err := a.kv.Set(context.Background(), keyAuthStorage, string(raw)); err != nil {
		log.Printf("auth: persist: %v", err)
	}
}

// roleTokenKey picks the local storage key for the role's session token.
func roleTokenKey(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return keyAdminToken
	case models.RoleVendor:
		return keyVendorToken
	default:
		return keyToken
	}
}
