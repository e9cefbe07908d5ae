package mutate

import (
	"testing"

	"shopsphere/internal/model"
)

func shopWith(regular, oneOff []model.Item) model.Shop {
	return model.Shop{
		ID:   "shop-test0001",
		Name: "Groceries",
		Icon: "ShoppingCart",
		Lists: model.Lists{
			Regular: regular,
			OneOff:  oneOff,
		},
	}
}

func ids(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sameIDs(t *testing.T, got []model.Item, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d items %v; got %v", len(want), want, ids(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("expected ids %v; got %v", want, ids(got))
		}
	}
}

func TestAddItem_PrependsAndTrims(t *testing.T) {
	s := shopWith([]model.Item{{ID: "item-a", Text: "Bread"}}, nil)

	s2 := AddItem(s, model.ListRegular, "  Milk  ")
	if len(s2.Lists.Regular) != 2 {
		t.Fatalf("expected 2 regular items; got %d", len(s2.Lists.Regular))
	}
	if s2.Lists.Regular[0].Text != "Milk" {
		t.Fatalf("expected trimmed text Milk first; got %q", s2.Lists.Regular[0].Text)
	}
	if s2.Lists.Regular[0].Completed {
		t.Fatalf("new item should start uncompleted")
	}
	if s2.Lists.Regular[1].ID != "item-a" {
		t.Fatalf("existing item should follow the new one")
	}

	// Input untouched.
	if len(s.Lists.Regular) != 1 {
		t.Fatalf("AddItem mutated its input")
	}
}

func TestAddItem_EmptyTextNoop(t *testing.T) {
	s := shopWith(nil, nil)
	s2 := AddItem(s, model.ListOneOff, "   ")
	if len(s2.Lists.OneOff) != 0 {
		t.Fatalf("expected no-op for empty text")
	}
}

func TestAddItem_UniqueIDs(t *testing.T) {
	s := shopWith(nil, nil)
	for i := 0; i < 50; i++ {
		s = AddItem(s, model.ListRegular, "x")
	}
	seen := map[string]bool{}
	for _, it := range s.Lists.Regular {
		if seen[it.ID] {
			t.Fatalf("duplicate id %q", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestToggleRegularItem(t *testing.T) {
	s := shopWith([]model.Item{{ID: "item-a", Text: "Eggs"}}, nil)

	s2 := ToggleRegularItem(s, "item-a")
	if !s2.Lists.Regular[0].Completed {
		t.Fatalf("expected completed=true after toggle")
	}
	if s.Lists.Regular[0].Completed {
		t.Fatalf("ToggleRegularItem mutated its input")
	}

	s3 := ToggleRegularItem(s2, "item-a")
	if s3.Lists.Regular[0].Completed {
		t.Fatalf("expected completed=false after second toggle")
	}

	// Unknown id: no-op, not an error.
	s4 := ToggleRegularItem(s2, "item-missing")
	if !s4.Lists.Regular[0].Completed {
		t.Fatalf("unknown id should leave the shop unchanged")
	}
}

func TestAddToggleUndoScenario(t *testing.T) {
	// Starting from an empty shop: add a one-off "Milk", remove it
	// (completion), then restore it via the undo path.
	s := AddItem(shopWith(nil, nil), model.ListOneOff, "Milk")
	if len(s.Lists.OneOff) != 1 {
		t.Fatalf("expected 1 one-off item; got %d", len(s.Lists.OneOff))
	}
	milk := s.Lists.OneOff[0]
	if milk.Text != "Milk" || milk.Completed {
		t.Fatalf("unexpected new item %+v", milk)
	}

	s2, removed, ok := RemoveOneOffItem(s, milk.ID)
	if !ok {
		t.Fatalf("expected removal to succeed")
	}
	if len(s2.Lists.OneOff) != 0 {
		t.Fatalf("expected empty one-off list after removal")
	}
	if removed.ID != milk.ID || removed.Text != "Milk" {
		t.Fatalf("removed item mismatch: %+v", removed)
	}

	s3 := RestoreOneOffItem(s2, removed)
	if len(s3.Lists.OneOff) != 1 {
		t.Fatalf("expected 1 one-off item after restore")
	}
	if s3.Lists.OneOff[0].ID != milk.ID || s3.Lists.OneOff[0].Text != "Milk" {
		t.Fatalf("restored item mismatch: %+v", s3.Lists.OneOff[0])
	}
}

func TestRemoveOneOffItem_MissingID(t *testing.T) {
	s := shopWith(nil, []model.Item{{ID: "item-a", Text: "Glue"}})
	s2, _, ok := RemoveOneOffItem(s, "item-missing")
	if ok {
		t.Fatalf("expected ok=false for missing id")
	}
	sameIDs(t, s2.Lists.OneOff, "item-a")
}

func TestRestoreOneOffItem_Idempotent(t *testing.T) {
	it := model.Item{ID: "item-a", Text: "Glue"}
	s := shopWith(nil, []model.Item{{ID: "item-b", Text: "Tape"}})

	once := RestoreOneOffItem(s, it)
	twice := RestoreOneOffItem(once, it)
	sameIDs(t, once.Lists.OneOff, "item-a", "item-b")
	sameIDs(t, twice.Lists.OneOff, "item-a", "item-b")
}

func TestDeleteItem(t *testing.T) {
	s := shopWith(
		[]model.Item{{ID: "item-a", Text: "Eggs"}, {ID: "item-b", Text: "Jam"}},
		[]model.Item{{ID: "item-c", Text: "Glue"}},
	)

	s2 := DeleteItem(s, model.ListRegular, "item-a")
	sameIDs(t, s2.Lists.Regular, "item-b")
	sameIDs(t, s2.Lists.OneOff, "item-c")

	s3 := DeleteItem(s2, model.ListOneOff, "item-missing")
	sameIDs(t, s3.Lists.OneOff, "item-c")
}

func TestRenameItem(t *testing.T) {
	s := shopWith([]model.Item{{ID: "item-a", Text: "Eggs"}}, nil)

	s2 := RenameItem(s, model.ListRegular, "item-a", "  Organic eggs ")
	if got := s2.Lists.Regular[0].Text; got != "Organic eggs" {
		t.Fatalf("expected trimmed rename; got %q", got)
	}
	if s.Lists.Regular[0].Text != "Eggs" {
		t.Fatalf("RenameItem mutated its input")
	}

	s3 := RenameItem(s2, model.ListRegular, "item-a", "   ")
	if got := s3.Lists.Regular[0].Text; got != "Organic eggs" {
		t.Fatalf("empty rename should be a no-op; got %q", got)
	}
}

func TestMoveItem_ReactivatesAcrossLists(t *testing.T) {
	s := shopWith([]model.Item{{ID: "item-eggs", Text: "Eggs", Completed: true}}, nil)

	s2 := MoveItem(s, "item-eggs")
	if indexOfItem(s2.Lists.Regular, "item-eggs") >= 0 {
		t.Fatalf("item should have left the regular list")
	}
	sameIDs(t, s2.Lists.OneOff, "item-eggs")
	if s2.Lists.OneOff[0].Completed {
		t.Fatalf("crossing lists must reactivate the item")
	}

	// And back: prepended to regular, still active.
	s3 := AddItem(s2, model.ListRegular, "Bread")
	s4 := MoveItem(s3, "item-eggs")
	if len(s4.Lists.OneOff) != 0 {
		t.Fatalf("item should have left the one-off list")
	}
	if s4.Lists.Regular[0].ID != "item-eggs" {
		t.Fatalf("moved item should be prepended; got %v", ids(s4.Lists.Regular))
	}
}

func TestMoveItemOrder_StaysInPartition(t *testing.T) {
	// Interleaved partitions: active a1, completed c1, active a2, completed c2.
	s := shopWith([]model.Item{
		{ID: "item-a1", Text: "a1"},
		{ID: "item-c1", Text: "c1", Completed: true},
		{ID: "item-a2", Text: "a2"},
		{ID: "item-c2", Text: "c2", Completed: true},
	}, nil)

	// Moving a2 up swaps it with a1, skipping over c1.
	s2 := MoveItemOrder(s, "item-a2", model.DirectionUp)
	sameIDs(t, s2.Lists.Regular, "item-a2", "item-c1", "item-a1", "item-c2")

	// Completed partition multiset unchanged, positions unchanged.
	if !s2.Lists.Regular[1].Completed || !s2.Lists.Regular[3].Completed {
		t.Fatalf("completed items moved: %v", ids(s2.Lists.Regular))
	}

	// Moving c1 down swaps with c2, skipping over a1.
	s3 := MoveItemOrder(s2, "item-c1", model.DirectionDown)
	sameIDs(t, s3.Lists.Regular, "item-a2", "item-c2", "item-a1", "item-c1")
}

func TestMoveItemOrder_BoundaryNoop(t *testing.T) {
	s := shopWith([]model.Item{
		{ID: "item-a1", Text: "a1"},
		{ID: "item-c1", Text: "c1", Completed: true},
		{ID: "item-a2", Text: "a2"},
	}, []model.Item{{ID: "item-o1", Text: "o1"}})

	// First active item up.
	sameIDs(t, MoveItemOrder(s, "item-a1", model.DirectionUp).Lists.Regular,
		"item-a1", "item-c1", "item-a2")
	// Last active item down.
	sameIDs(t, MoveItemOrder(s, "item-a2", model.DirectionDown).Lists.Regular,
		"item-a1", "item-c1", "item-a2")
	// Sole completed item in either direction.
	sameIDs(t, MoveItemOrder(s, "item-c1", model.DirectionUp).Lists.Regular,
		"item-a1", "item-c1", "item-a2")
	// Sole one-off item.
	sameIDs(t, MoveItemOrder(s, "item-o1", model.DirectionDown).Lists.OneOff, "item-o1")
	// Unknown id.
	sameIDs(t, MoveItemOrder(s, "item-x", model.DirectionUp).Lists.Regular,
		"item-a1", "item-c1", "item-a2")
}

func TestReorderItems_WithinPartition(t *testing.T) {
	s := shopWith([]model.Item{
		{ID: "item-a1", Text: "a1"},
		{ID: "item-c1", Text: "c1", Completed: true},
		{ID: "item-a2", Text: "a2"},
		{ID: "item-a3", Text: "a3"},
		{ID: "item-c2", Text: "c2", Completed: true},
	}, nil)

	// Drag active index 0 (a1) to active index 2 (after a3).
	s2 := ReorderItems(s, model.ListRegular, false, 0, 2)
	sameIDs(t, s2.Lists.Regular, "item-a2", "item-c1", "item-a3", "item-a1", "item-c2")

	// Completed partition order preserved across the active reorder.
	if s2.Lists.Regular[1].ID != "item-c1" || s2.Lists.Regular[4].ID != "item-c2" {
		t.Fatalf("active reorder perturbed completed partition: %v", ids(s2.Lists.Regular))
	}

	// Drag completed index 1 (c2) to index 0; active order preserved.
	s3 := ReorderItems(s2, model.ListRegular, true, 1, 0)
	sameIDs(t, s3.Lists.Regular, "item-a2", "item-c2", "item-a3", "item-a1", "item-c1")
}

func TestReorderItems_OneOffAndBounds(t *testing.T) {
	s := shopWith(nil, []model.Item{
		{ID: "item-o1", Text: "o1"},
		{ID: "item-o2", Text: "o2"},
		{ID: "item-o3", Text: "o3"},
	})

	s2 := ReorderItems(s, model.ListOneOff, false, 2, 0)
	sameIDs(t, s2.Lists.OneOff, "item-o3", "item-o1", "item-o2")

	// Out-of-range indexes are a no-op.
	sameIDs(t, ReorderItems(s, model.ListOneOff, false, 0, 3).Lists.OneOff,
		"item-o1", "item-o2", "item-o3")
	sameIDs(t, ReorderItems(s, model.ListOneOff, false, -1, 1).Lists.OneOff,
		"item-o1", "item-o2", "item-o3")
}

func TestSortCompletedItems(t *testing.T) {
	s := shopWith([]model.Item{
		{ID: "item-banana", Text: "Banana", Completed: true},
		{ID: "item-a1", Text: "zebra snacks"},
		{ID: "item-apple", Text: "apple", Completed: true},
		{ID: "item-a2", Text: "anchovies"},
		{ID: "item-cherry", Text: "Cherry", Completed: true},
	}, []model.Item{{ID: "item-o1", Text: "zzz"}})

	s2 := SortCompletedItems(s)

	// Completed slots now hold apple, Banana, Cherry (case-insensitive order).
	sameIDs(t, s2.Lists.Regular, "item-apple", "item-a1", "item-banana", "item-a2", "item-cherry")

	// Active items keep content and order; one-off list untouched.
	if s2.Lists.Regular[1].Text != "zebra snacks" || s2.Lists.Regular[3].Text != "anchovies" {
		t.Fatalf("active partition perturbed: %v", ids(s2.Lists.Regular))
	}
	sameIDs(t, s2.Lists.OneOff, "item-o1")
}
