package session

import (
	"errors"
	"testing"
	"time"

	"shopsphere/internal/model"
)

// fakeLocal is an in-memory stand-in for the local adapter: full-collection
// saves only, single delivery on subscribe.
type fakeLocal struct {
	shops     []model.Shop
	saveCalls int
	failSub   bool
}

func (f *fakeLocal) Load() ([]model.Shop, error) { return f.shops, nil }

func (f *fakeLocal) Save(shops []model.Shop) error {
	f.saveCalls++
	f.shops = shops
	return nil
}

func (f *fakeLocal) Subscribe(identity string, onChange func([]model.Shop)) (func(), error) {
	if f.failSub {
		return nil, errors.New("boom")
	}
	onChange(f.shops)
	return func() {}, nil
}

// fakeRemote additionally records targeted document writes.
type fakeRemote struct {
	fakeLocal
	puts    []model.Shop
	deletes []string
}

func (f *fakeRemote) PutShop(s model.Shop) error {
	f.puts = append(f.puts, s)
	return nil
}

func (f *fakeRemote) DeleteShopDoc(shopID string) error {
	f.deletes = append(f.deletes, shopID)
	return nil
}

func TestStart_LoadsCollection(t *testing.T) {
	f := &fakeLocal{shops: []model.Shop{{ID: "shop-a", Name: "A"}}}
	s := New(f, "")
	s.Start()
	defer s.Close()

	if !s.Loaded() {
		t.Fatalf("expected loaded after Start")
	}
	if got := s.Shops(); len(got) != 1 || got[0].ID != "shop-a" {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

func TestStart_SubscribeFailureStillLoaded(t *testing.T) {
	s := New(&fakeLocal{failSub: true}, "")
	s.Start()
	defer s.Close()

	if !s.Loaded() {
		t.Fatalf("a failed subscription must still mark the session loaded")
	}
	if len(s.Shops()) != 0 {
		t.Fatalf("expected empty collection after subscribe failure")
	}
}

func TestIntents_PersistThroughAdapter(t *testing.T) {
	f := &fakeLocal{}
	s := New(f, "")
	s.Start()
	defer s.Close()

	shop, ok := s.AddShop("Groceries", "")
	if !ok {
		t.Fatalf("AddShop failed")
	}
	s.AddItem(shop.ID, model.ListRegular, "Milk")

	if f.saveCalls < 2 {
		t.Fatalf("expected a save per intent; got %d", f.saveCalls)
	}
	if len(f.shops) != 1 || len(f.shops[0].Lists.Regular) != 1 {
		t.Fatalf("persisted state mismatch: %+v", f.shops)
	}
	if f.shops[0].Lists.Regular[0].Text != "Milk" {
		t.Fatalf("persisted item mismatch: %+v", f.shops[0].Lists.Regular)
	}
}

func TestIntents_TargetedWritesForRemote(t *testing.T) {
	f := &fakeRemote{}
	s := New(f, "user-1")
	s.Start()
	defer s.Close()

	shop, _ := s.AddShop("Groceries", "")
	s.AddItem(shop.ID, model.ListOneOff, "Glue")
	s.DeleteShop(shop.ID)

	if f.saveCalls != 0 {
		t.Fatalf("remote adapter should get targeted writes, not full saves; got %d saves", f.saveCalls)
	}
	if len(f.puts) != 2 {
		t.Fatalf("expected 2 document puts; got %d", len(f.puts))
	}
	if len(f.deletes) != 1 || f.deletes[0] != shop.ID {
		t.Fatalf("expected delete of %s; got %v", shop.ID, f.deletes)
	}
}

func TestReorderShops_FullSave(t *testing.T) {
	f := &fakeRemote{}
	s := New(f, "user-1")
	s.Start()
	defer s.Close()

	s.AddShop("A", "")
	s.AddShop("B", "")
	s.ReorderShops(0, 1)

	// A collection reorder touches every order value, so it goes out as a
	// full replace even on the remote adapter.
	if f.saveCalls != 1 {
		t.Fatalf("expected one full save for the reorder; got %d", f.saveCalls)
	}
}

func TestSetIdentity_DiscardsAndResubscribes(t *testing.T) {
	f := &fakeLocal{shops: []model.Shop{{ID: "shop-a", Name: "A"}}}
	s := New(f, "user-1")
	s.Start()
	defer s.Close()

	f.shops = []model.Shop{{ID: "shop-b", Name: "B"}}
	s.SetIdentity("user-2")

	if got := s.Shops(); len(got) != 1 || got[0].ID != "shop-b" {
		t.Fatalf("expected the new identity's collection; got %+v", got)
	}
}

func TestCompleteOneOff_UndoWithinWindow(t *testing.T) {
	f := &fakeLocal{}
	s := New(f, "")
	s.Start()
	defer s.Close()

	shop, _ := s.AddShop("Groceries", "")
	s.AddItem(shop.ID, model.ListOneOff, "Milk")
	itemID := s.Shops()[0].Lists.OneOff[0].ID

	removed, ok := s.CompleteOneOffItem(shop.ID, itemID)
	if !ok {
		t.Fatalf("expected removal to succeed")
	}
	if removed.Text != "Milk" {
		t.Fatalf("unexpected removed item: %+v", removed)
	}
	if len(s.Shops()[0].Lists.OneOff) != 0 {
		t.Fatalf("item should be removed immediately (optimistic)")
	}
	if _, open := s.PendingRemoval(); !open {
		t.Fatalf("expected an open undo window")
	}

	if !s.UndoRemoval() {
		t.Fatalf("expected undo to land within the window")
	}
	oneOff := s.Shops()[0].Lists.OneOff
	if len(oneOff) != 1 || oneOff[0].ID != itemID {
		t.Fatalf("expected item restored; got %+v", oneOff)
	}
	if _, open := s.PendingRemoval(); open {
		t.Fatalf("undo must close the window")
	}
}

func TestCompleteOneOff_WindowExpires(t *testing.T) {
	f := &fakeLocal{}
	s := New(f, "")
	s.SetUndoDuration(10 * time.Millisecond)
	s.Start()
	defer s.Close()

	shop, _ := s.AddShop("Groceries", "")
	s.AddItem(shop.ID, model.ListOneOff, "Milk")
	itemID := s.Shops()[0].Lists.OneOff[0].ID

	if _, ok := s.CompleteOneOffItem(shop.ID, itemID); !ok {
		t.Fatalf("expected removal to succeed")
	}

	deadline := time.Now().Add(time.Second)
	for {
		if _, open := s.PendingRemoval(); !open {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("undo window never expired")
		}
		time.Sleep(time.Millisecond)
	}

	if s.UndoRemoval() {
		t.Fatalf("undo after expiry must be a no-op")
	}
	if len(s.Shops()[0].Lists.OneOff) != 0 {
		t.Fatalf("expired removal must stay removed")
	}
}

func TestCompleteOneOff_SecondRemovalCommitsFirst(t *testing.T) {
	f := &fakeLocal{}
	s := New(f, "")
	s.Start()
	defer s.Close()

	shop, _ := s.AddShop("Groceries", "")
	s.AddItem(shop.ID, model.ListOneOff, "Milk")
	s.AddItem(shop.ID, model.ListOneOff, "Glue")
	oneOff := s.Shops()[0].Lists.OneOff // Glue first (newest-first)

	s.CompleteOneOffItem(shop.ID, oneOff[0].ID)
	s.CompleteOneOffItem(shop.ID, oneOff[1].ID)

	// Only the second window is open; undo restores Milk, not Glue.
	s.UndoRemoval()
	got := s.Shops()[0].Lists.OneOff
	if len(got) != 1 || got[0].Text != "Milk" {
		t.Fatalf("expected only the second removal undoable; got %+v", got)
	}
}
