package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDDecodesStringsAndNumbers(t *testing.T) {
	cases := []struct {
		raw  string
		want ID
	}{
		{`"u1"`, "u1"},
		{`42`, "42"},
		{`3.5`, "3.5"},
		{`null`, ""},
		{`""`, ""},
	}
	for _, tc := range cases {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &id), "raw %s", tc.raw)
		assert.Equal(t, tc.want, id, "raw %s", tc.raw)
	}
}

func TestUserIDAliasPriority(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    ID
	}{
		{"user_id first", `{"user_id":"a","id":"b","_id":"c"}`, "a"},
		{"then id", `{"id":"b","_id":"c"}`, "b"},
		{"then _id", `{"_id":"c"}`, "c"},
		{"numeric id", `{"id":7}`, "7"},
		{"none", `{"name":"Jo"}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tc.payload), &u))
			assert.Equal(t, tc.want, u.ID)
		})
	}
}

func TestUserRoundTripKeepsCanonicalID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":"u1","name":"Jo","role":"vendor"}`), &u))

	raw, err := json.Marshal(u)
	require.NoError(t, err)

	var again User
	require.NoError(t, json.Unmarshal(raw, &again))
	assert.Equal(t, ID("u1"), again.ID)
	assert.Equal(t, RoleVendor, again.Role)
}

func TestWishlistItemIDFallback(t *testing.T) {
	var item WishlistItem
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"66f1","name":"Fern","price":120}`), &item))
	assert.Equal(t, ID("66f1"), item.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","_id":"66f1"}`), &item))
	assert.Equal(t, ID("p1"), item.ID, "id must win over _id")
}
