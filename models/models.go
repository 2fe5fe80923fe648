package models

import (
	"encoding/json"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

// ID is a product or user identifier. Upstream records are inconsistently
// shaped, so it decodes from either a JSON string or a JSON number.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// FirstID returns the first non-empty id, mirroring the aliased id fields
// found in remote payloads (user_id, id, _id).
func FirstID(ids ...ID) ID {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UnmarshalJSON normalizes the aliased id fields once at the decoding
// boundary, so the rest of the code only ever sees User.ID.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		UserID  ID     `json:"user_id"`
		ID      ID     `json:"id"`
		MongoID ID     `json:"_id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Role    Role   `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = FirstID(raw.UserID, raw.ID, raw.MongoID)
	u.Name = raw.Name
	u.Email = raw.Email
	u.Role = raw.Role
	return nil
}

type CartItem struct {
	ID       ID      `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Variant  string  `json:"variant,omitempty"`
	Image    string  `json:"image,omitempty"`
}

type WishlistItem struct {
	ID     ID       `json:"id"`
	Name   string   `json:"name"`
	Price  float64  `json:"price"`
	Images []string `json:"images,omitempty"`
}

// UnmarshalJSON falls back from id to _id, matching the shapes the remote
// product records arrive in.
func (w *WishlistItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      ID       `json:"id"`
		MongoID ID       `json:"_id"`
		Name    string   `json:"name"`
		Price   float64  `json:"price"`
		Images  []string `json:"images"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	w.ID = FirstID(raw.ID, raw.MongoID)
	w.Name = raw.Name
	w.Price = raw.Price
	w.Images = raw.Images
	return nil
}
