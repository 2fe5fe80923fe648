package stores

import (
	"context"
	"sync"

	"plantshop/models"
)

// fakeAPI is a test double for the remote storefront API.
type fakeAPI struct {
	mu sync.Mutex

	logoutAdmin  int
	logoutVendor int
	logoutUser   int
	logoutErr    error

	wishlist  []models.WishlistItem
	fetchErr  error
	addErr    error
	removeErr error

	fetched []models.ID
	added   [][2]models.ID // productID, userID
	removed [][2]models.ID
}

var _ RemoteAPI = (*fakeAPI)(nil)

func (f *fakeAPI) LogoutAdmin(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutAdmin++
	return f.logoutErr
}

func (f *fakeAPI) LogoutVendor(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutVendor++
	return f.logoutErr
}

func (f *fakeAPI) LogoutUser(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutUser++
	return f.logoutErr
}

func (f *fakeAPI) FetchWishlist(ctx context.Context, userID models.ID) ([]models.WishlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, userID)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]models.WishlistItem, len(f.wishlist))
	copy(out, f.wishlist)
	return out, nil
}

func (f *fakeAPI) AddWishlistItem(ctx context.Context, productID, userID models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.added = append(f.added, [2]models.ID{productID, userID})
	return nil
}

func (f *fakeAPI) RemoveWishlistItem(ctx context.Context, productID, userID models.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, [2]models.ID{productID, userID})
	return nil
}

func (f *fakeAPI) fetchedIDs() []models.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ID(nil), f.fetched...)
}
