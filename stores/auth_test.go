package stores

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantshop/localstore"
	"plantshop/models"
)

// newTestAuth wires an auth store with a synchronous user-changed subscriber,
// standing in for the session coordinator.
func newTestAuth(t *testing.T, api *fakeAPI) (*AuthStore, *WishlistStore, localstore.KV) {
	t.Helper()
	kv := localstore.NewMemoryStore().Namespace("auth-session")
	wishlist := NewWishlistStore(api)
	auth := NewAuthStore(kv, api, wishlist)
	auth.OnUserChanged(func(userID models.ID) {
		if err := wishlist.Fetch(context.Background(), userID); err != nil {
			t.Logf("wishlist fetch: %v", err)
		}
	})
	return auth, wishlist, kv
}

func decodeUser(t *testing.T, payload string) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, json.Unmarshal([]byte(payload), &u))
	return u
}

func TestLoginTriggersWishlistFetchWithAliasedID(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    []models.ID
	}{
		{"user_id wins", `{"user_id":"u1","id":"other","_id":"mongo"}`, []models.ID{"u1"}},
		{"id next", `{"id":42}`, []models.ID{"42"}},
		{"_id last", `{"_id":"66f1"}`, []models.ID{"66f1"}},
		{"no id no fetch", `{"name":"Jo"}`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			auth, _, _ := newTestAuth(t, api)

			auth.Login(decodeUser(t, tc.payload), "tok")

			assert.Equal(t, tc.want, api.fetchedIDs())
			_, authenticated := auth.Snapshot()
			assert.True(t, authenticated)
		})
	}
}

func TestLoginPersistsRoleToken(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		role models.Role
		key  string
	}{
		{models.RoleCustomer, "token"},
		{models.RoleVendor, "vendor_token"},
		{models.RoleAdmin, "admin_token"},
	}

	for _, tc := range cases {
		api := &fakeAPI{}
		auth, _, kv := newTestAuth(t, api)

		auth.Login(models.User{ID: "u1", Role: tc.role}, "secret")

		got, err := kv.Get(ctx, tc.key)
		require.NoError(t, err, "expected %s to be stored", tc.key)
		assert.Equal(t, "secret", got)

		userID, err := kv.Get(ctx, "userId")
		require.NoError(t, err)
		assert.Equal(t, "u1", userID)
	}
}

func TestLogoutPicksRoleEndpoint(t *testing.T) {
	ctx := context.Background()

	api := &fakeAPI{}
	auth, _, _ := newTestAuth(t, api)
	auth.Login(models.User{ID: "u1", Role: models.RoleVendor}, "tok")
	auth.Logout(ctx)
	assert.Equal(t, 1, api.logoutVendor)
	assert.Zero(t, api.logoutAdmin)
	assert.Zero(t, api.logoutUser)

	api = &fakeAPI{}
	auth, _, _ = newTestAuth(t, api)
	auth.Login(models.User{ID: "u1", Role: models.RoleAdmin}, "tok")
	auth.Logout(ctx)
	assert.Equal(t, 1, api.logoutAdmin)

	// Anonymous logout defaults to the customer endpoint
	api = &fakeAPI{}
	auth, _, _ = newTestAuth(t, api)
	auth.Logout(ctx)
	assert.Equal(t, 1, api.logoutUser)
}

func TestLogoutAlwaysCompletesLocally(t *testing.T) {
	ctx := context.Background()

	for _, remoteErr := range []error{nil, errors.New("offline")} {
		api := &fakeAPI{
			wishlist:  []models.WishlistItem{{ID: "p1"}},
			logoutErr: remoteErr,
		}
		auth, wishlist, kv := newTestAuth(t, api)

		auth.Login(decodeUser(t, `{"id":"u1","role":"vendor"}`), "tok")
		require.NotEmpty(t, wishlist.Items(), "login fetch should have filled the mirror")

		auth.Logout(ctx)

		user, authenticated := auth.Snapshot()
		assert.False(t, authenticated)
		assert.Nil(t, user)
		assert.Empty(t, wishlist.Items())

		for _, key := range []string{"token", "admin_token", "vendor_token", "userId"} {
			_, err := kv.Get(ctx, key)
			assert.ErrorIs(t, err, localstore.ErrNoValue, "%s must be gone (remote err: %v)", key, remoteErr)
		}
	}
}

func TestAuthSliceSurvivesReload(t *testing.T) {
	api := &fakeAPI{}
	store := localstore.NewMemoryStore()
	kv := store.Namespace("s1")

	auth := NewAuthStore(kv, api, NewWishlistStore(api))
	auth.Login(models.User{ID: "u1", Name: "Jo", Role: models.RoleCustomer}, "tok")

	reloaded := NewAuthStore(store.Namespace("s1"), api, NewWishlistStore(api))
	user, authenticated := reloaded.Snapshot()
	require.True(t, authenticated)
	require.NotNil(t, user)
	assert.Equal(t, models.ID("u1"), user.ID)
	assert.Equal(t, "Jo", user.Name)
}

func TestLoginOverwritesExistingSession(t *testing.T) {
	api := &fakeAPI{}
	auth, _, _ := newTestAuth(t, api)

	auth.Login(models.User{ID: "u1"}, "tok1")
	auth.Login(models.User{ID: "u2"}, "tok2")

	user, authenticated := auth.Snapshot()
	require.True(t, authenticated)
	assert.Equal(t, models.ID("u2"), user.ID)
	assert.Equal(t, []models.ID{"u1", "u2"}, api.fetchedIDs())
}
