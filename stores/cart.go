package stores

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"golang.org/x/exp/slices"

	"plantshop/localstore"
	"plantshop/models"
)

var (
	ErrQuantityTooLow = errors.New("quantity must be at least 1")
	ErrItemNotFound   = errors.New("item not in cart")
)

// CartStore holds the pending-purchase line items. The cart is scoped to the
// browser session, not to an account: it survives login and logout so a guest
// cart carries over.
type CartStore struct {
	mu    sync.Mutex
	items []models.CartItem
	kv    localstore.KV
}

// NewCartStore loads the persisted line items, if any, back into memory.
func NewCartStore(kv localstore.KV) *CartStore {
	c := &CartStore{kv: kv}
	raw, err := kv.Get(context.Background(), keyCartStorage)
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &c.items); err != nil {
			log.Printf("cart: corrupt persisted slice dropped: %v", err)
			c.items = nil
		}
	}
	return c
}

// AddItem appends a new line or, when a line with the same id and variant
// already exists, increments its quantity instead of duplicating.
func (c *CartStore) AddItem(item models.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.items, func(line models.CartItem) bool {
		return line.ID == item.ID && line.Variant == item.Variant
	})
	if i >= 0 {
		c.items[i].Quantity += item.Quantity
	} else {
		c.items = append(c.items, item)
	}
	c.persist()
}

// RemoveItem deletes the line with that id; no-op when absent.
func (c *CartStore) RemoveItem(id models.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.items, func(line models.CartItem) bool {
		return line.ID == id
	})
	if i < 0 {
		return
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.persist()
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are rejected
// here, not just in the UI: removing the last unit goes through RemoveItem.
func (c *CartStore) UpdateQuantity(id models.ID, quantity int) error {
	if quantity < 1 {
		return ErrQuantityTooLow
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := slices.IndexFunc(c.items, func(line models.CartItem) bool {
		return line.ID == id
	})
	if i < 0 {
		return ErrItemNotFound
	}
	c.items[i].Quantity = quantity
	c.persist()
	return nil
}

// Clear empties the cart, e.g. after an order is confirmed.
func (c *CartStore) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist()
}

// Subtotal is derived from the lines on every call, never stored, so it
// cannot desync from them.
func (c *CartStore) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, line := range c.items {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Items returns a copy of the lines in insertion order.
func (c *CartStore) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// persist writes the line items under the session's cart-storage key.
// Caller holds c.mu. Cart mutations always succeed; a failed write only
// costs durability, so it is logged and ignored.
func (c *CartStore) persist() {
	raw, err := json.Marshal(c.items)
	if err != nil {
		log.Printf("cart: marshal persisted slice: %v", err)
		return
	}
	if err := c.kv.Set(context.Background(), keyCartStorage, string(raw)); err != nil {
		log.Printf("cart: persist: %v", err)
	}
}
