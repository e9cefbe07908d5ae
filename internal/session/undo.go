package session

import (
	"time"

	"shopsphere/internal/model"
	"shopsphere/internal/mutate"
)

// DefaultUndoWindow is how long a removed one-off item stays restorable.
const DefaultUndoWindow = 5 * time.Second

// pendingRemoval is the single in-flight undo window. The removal itself is
// already applied and persisted (optimistic); the window only controls
// whether the restore path is still offered. Nothing here is written to the
// collection, so a duplicate snapshot cannot resurrect the item.
type pendingRemoval struct {
	shopID string
	item   model.Item
	timer  *time.Timer
}

func (s *Session) stopPendingLocked() {
	if s.pending != nil {
		s.pending.timer.Stop()
		s.pending = nil
	}
}

// CompleteOneOffItem removes a one-off item (its completion action) and opens
// the undo window. Returns the removed item for the caller's affordance;
// ok=false when the id wasn't present. Opening a new window commits any
// previous removal immediately: only one window is ever open.
func (s *Session) CompleteOneOffItem(shopID, itemID string) (model.Item, bool) {
	s.mu.Lock()
	shop, found := mutate.FindShop(s.shops, shopID)
	if !found {
		s.mu.Unlock()
		return model.Item{}, false
	}
	updated, removed, ok := mutate.RemoveOneOffItem(shop, itemID)
	if !ok {
		s.mu.Unlock()
		return model.Item{}, false
	}
	shops := mutate.ReplaceShop(s.shops, updated)

	s.stopPendingLocked()
	p := &pendingRemoval{shopID: shopID, item: removed}
	p.timer = time.AfterFunc(s.undoDuration, func() { s.expireWindow(p) })
	s.pending = p
	s.mu.Unlock()

	s.putShop(shops, updated)
	return removed, true
}

// UndoRemoval restores the item of the open undo window, if any. The restore
// goes through the idempotent engine path, so a race with expiry or a
// duplicate invocation cannot duplicate the item.
func (s *Session) UndoRemoval() bool {
	s.mu.Lock()
	p := s.pending
	s.stopPendingLocked()
	s.mu.Unlock()
	if p == nil {
		return false
	}
	s.RestoreOneOffItem(p.shopID, p.item)
	return true
}

// PendingRemoval reports the item whose undo window is open, for the UI's
// dismissible affordance.
func (s *Session) PendingRemoval() (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return model.Item{}, false
	}
	return s.pending.item, true
}

// expireWindow clears the window when its timer fires. The item is already
// removed and persisted; expiry only withdraws the restore affordance.
func (s *Session) expireWindow(p *pendingRemoval) {
	s.mu.Lock()
	if s.pending != p {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	shops := s.shops
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(shops)
	}
}
