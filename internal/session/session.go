// Package session owns the in-memory collection and routes every intent
// through the pure transforms in internal/mutate, persisting the result via
// an injected store.Adapter. All mutation is optimistic: persistence
// failures are logged and the in-memory tree stays authoritative until the
// next successful write (or, in remote mode, the next snapshot).
package session

import (
	"log"
	"sync"
	"time"

	"shopsphere/internal/model"
	"shopsphere/internal/mutate"
	"shopsphere/internal/store"
)

// Session is the single owner of the mutable collection. Safe for use from
// the UI loop plus timer and subscription callbacks.
type Session struct {
	mu sync.Mutex

	adapter  store.Adapter
	identity string

	shops  []model.Shop
	loaded bool

	unsubscribe func()
	onChange    func([]model.Shop)

	pending      *pendingRemoval
	undoDuration time.Duration
}

// New creates a session over the given adapter. identity may be empty (no
// remote session).
func New(adapter store.Adapter, identity string) *Session {
	return &Session{
		adapter:      adapter,
		identity:     identity,
		shops:        []model.Shop{},
		undoDuration: DefaultUndoWindow,
	}
}

// SetUndoDuration overrides the undo window length (tests use a short one).
func (s *Session) SetUndoDuration(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undoDuration = d
}

// SetOnChange registers the re-render hook. Called with the new collection
// after every local intent and every subscription delivery.
func (s *Session) SetOnChange(fn func([]model.Shop)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Start establishes the subscription for the current identity. A channel
// failure is logged and the session still reports loaded, with an empty
// collection, so the UI never hangs on a spinner.
func (s *Session) Start() {
	s.mu.Lock()
	adapter := s.adapter
	identity := s.identity
	s.mu.Unlock()

	unsub, err := adapter.Subscribe(identity, s.applySnapshot)
	if err != nil {
		log.Printf("session: subscribe failed: %v", err)
		s.mu.Lock()
		s.loaded = true
		s.mu.Unlock()
		return
	}
	s.mu.Lock()
	s.unsubscribe = unsub
	s.mu.Unlock()
}

// Close tears down the subscription and any pending undo window.
func (s *Session) Close() {
	s.mu.Lock()
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.stopPendingLocked()
	s.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// SetIdentity switches the owning identity: the in-memory collection is
// discarded and the subscription re-established against the new identity's
// data. A nil-to-identity switch is how sign-in looks to the core.
func (s *Session) SetIdentity(identity string) {
	s.mu.Lock()
	if s.identity == identity {
		s.mu.Unlock()
		return
	}
	unsub := s.unsubscribe
	s.unsubscribe = nil
	s.identity = identity
	s.shops = []model.Shop{}
	s.loaded = false
	s.stopPendingLocked()
	s.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	s.Start()
}

// applySnapshot replaces local state with the server-confirmed tree.
func (s *Session) applySnapshot(shops []model.Shop) {
	s.mu.Lock()
	s.shops = shops
	s.loaded = true
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(shops)
	}
}

// Shops returns the current collection.
func (s *Session) Shops() []model.Shop {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shops
}

// Shop returns the shop with the given id.
func (s *Session) Shop(shopID string) (model.Shop, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return mutate.FindShop(s.shops, shopID)
}

// Loaded reports whether the first load (or snapshot) has happened.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// setCollection installs a new collection and persists it wholesale.
func (s *Session) setCollection(shops []model.Shop) {
	s.mu.Lock()
	s.shops = shops
	adapter := s.adapter
	fn := s.onChange
	s.mu.Unlock()

	if err := adapter.Save(shops); err != nil {
		log.Printf("session: save failed (state kept in memory): %v", err)
	}
	if fn != nil {
		fn(shops)
	}
}

// putShop installs an updated shop and persists just that document when the
// adapter supports targeted writes.
func (s *Session) putShop(shops []model.Shop, shop model.Shop) {
	s.mu.Lock()
	s.shops = shops
	adapter := s.adapter
	fn := s.onChange
	s.mu.Unlock()

	var err error
	if w, ok := adapter.(store.ShopWriter); ok {
		err = w.PutShop(shop)
	} else {
		err = adapter.Save(shops)
	}
	if err != nil {
		log.Printf("session: save failed (state kept in memory): %v", err)
	}
	if fn != nil {
		fn(shops)
	}
}

// AddShop creates a shop. Returns ok=false when the trimmed name is empty.
func (s *Session) AddShop(name, icon string) (model.Shop, bool) {
	s.mu.Lock()
	shops, shop, ok := mutate.AddShop(s.shops, name, icon)
	s.mu.Unlock()
	if !ok {
		return model.Shop{}, false
	}
	s.putShop(shops, shop)
	return shop, true
}

// EditShop updates display metadata of the matching shop.
func (s *Session) EditShop(shopID, name, icon string) {
	s.mu.Lock()
	shops := mutate.EditShop(s.shops, shopID, name, icon)
	shop, found := mutate.FindShop(shops, shopID)
	s.mu.Unlock()
	if !found {
		return
	}
	s.putShop(shops, shop)
}

// DeleteShop removes the matching shop and its items.
func (s *Session) DeleteShop(shopID string) {
	s.mu.Lock()
	before := len(s.shops)
	shops := mutate.DeleteShop(s.shops, shopID)
	if len(shops) == before {
		s.mu.Unlock()
		return
	}
	s.shops = shops
	adapter := s.adapter
	fn := s.onChange
	s.mu.Unlock()

	var err error
	if w, ok := adapter.(store.ShopWriter); ok {
		// The server densifies the remaining order values itself.
		err = w.DeleteShopDoc(shopID)
	} else {
		err = adapter.Save(shops)
	}
	if err != nil {
		log.Printf("session: save failed (state kept in memory): %v", err)
	}
	if fn != nil {
		fn(shops)
	}
}

// MoveShopOrder swaps the shop with its neighbor in the given direction.
func (s *Session) MoveShopOrder(shopID string, dir model.Direction) {
	s.mu.Lock()
	shops := mutate.MoveShopOrder(s.shops, shopID, dir)
	s.mu.Unlock()
	s.setCollection(shops)
}

// ReorderShops moves the shop at dragIndex to hoverIndex.
func (s *Session) ReorderShops(dragIndex, hoverIndex int) {
	s.mu.Lock()
	shops := mutate.ReorderShops(s.shops, dragIndex, hoverIndex)
	s.mu.Unlock()
	s.setCollection(shops)
}

// transformShop applies fn to the matching shop and persists the result.
func (s *Session) transformShop(shopID string, fn func(model.Shop) model.Shop) {
	s.mu.Lock()
	shop, found := mutate.FindShop(s.shops, shopID)
	if !found {
		s.mu.Unlock()
		return
	}
	updated := fn(shop)
	shops := mutate.ReplaceShop(s.shops, updated)
	s.mu.Unlock()
	s.putShop(shops, updated)
}

// AddItem prepends a new item to the named list of the shop.
func (s *Session) AddItem(shopID string, lt model.ListType, text string) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.AddItem(shop, lt, text)
	})
}

// ToggleRegularItem flips completion state of a regular-list item.
func (s *Session) ToggleRegularItem(shopID, itemID string) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.ToggleRegularItem(shop, itemID)
	})
}

// RestoreOneOffItem re-adds a previously removed one-off item (idempotent).
func (s *Session) RestoreOneOffItem(shopID string, it model.Item) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.RestoreOneOffItem(shop, it)
	})
}

// DeleteItem removes an item from the named list, with no undo.
func (s *Session) DeleteItem(shopID string, lt model.ListType, itemID string) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.DeleteItem(shop, lt, itemID)
	})
}

// RenameItem renames an item in the named list.
func (s *Session) RenameItem(shopID string, lt model.ListType, itemID, newText string) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.RenameItem(shop, lt, itemID, newText)
	})
}

// MoveItem transfers an item to the shop's other list, reactivating it.
func (s *Session) MoveItem(shopID, itemID string) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.MoveItem(shop, itemID)
	})
}

// MoveItemOrder moves an item one position within its ordering partition.
func (s *Session) MoveItemOrder(shopID, itemID string, dir model.Direction) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.MoveItemOrder(shop, itemID, dir)
	})
}

// ReorderItems is the drag-and-drop reorder within one partition.
func (s *Session) ReorderItems(shopID string, lt model.ListType, completed bool, dragIndex, hoverIndex int) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.ReorderItems(shop, lt, completed, dragIndex, hoverIndex)
	})
}

// SortCompletedItems alphabetizes the completed partition of the regular list.
func (s *Session) SortCompletedItems(shopID string) {
	s.transformShop(shopID, func(shop model.Shop) model.Shop {
		return mutate.SortCompletedItems(shop)
	})
}
