package mutate

import (
	"sort"
	"strings"

	"shopsphere/internal/model"
)

func cloneItems(in []model.Item) []model.Item {
	if in == nil {
		return nil
	}
	out := make([]model.Item, len(in))
	copy(out, in)
	return out
}

func cloneShop(s model.Shop) model.Shop {
	s.Lists.Regular = cloneItems(s.Lists.Regular)
	s.Lists.OneOff = cloneItems(s.Lists.OneOff)
	return s
}

func setList(s model.Shop, lt model.ListType, items []model.Item) model.Shop {
	if lt == model.ListOneOff {
		s.Lists.OneOff = items
	} else {
		s.Lists.Regular = items
	}
	return s
}

func indexOfItem(items []model.Item, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// AddItem prepends a newly created item to the named list. Newest-first so a
// just-added item is visible without scrolling. No-op when the trimmed text
// is empty.
func AddItem(s model.Shop, lt model.ListType, text string) model.Shop {
	it, ok := NewItem(text)
	if !ok {
		return s
	}
	s = cloneShop(s)
	return setList(s, lt, append([]model.Item{it}, s.List(lt)...))
}

// ToggleRegularItem flips the completed flag on the matching regular-list
// item. The item stays in the list; the active/completed partition is derived
// at read time from the flag.
func ToggleRegularItem(s model.Shop, itemID string) model.Shop {
	idx := indexOfItem(s.Lists.Regular, itemID)
	if idx < 0 {
		return s
	}
	s = cloneShop(s)
	s.Lists.Regular[idx] = ToggleCompleted(s.Lists.Regular[idx])
	return s
}

// RemoveOneOffItem deletes the matching item from the one-off list and
// returns it so the caller can offer an undo. This is the canonical
// completion action for one-off items; they have no completed state.
func RemoveOneOffItem(s model.Shop, itemID string) (model.Shop, model.Item, bool) {
	idx := indexOfItem(s.Lists.OneOff, itemID)
	if idx < 0 {
		return s, model.Item{}, false
	}
	removed := s.Lists.OneOff[idx]
	s = cloneShop(s)
	s.Lists.OneOff = append(s.Lists.OneOff[:idx], s.Lists.OneOff[idx+1:]...)
	return s, removed, true
}

// RestoreOneOffItem re-prepends a previously removed item to the one-off
// list. Idempotent: if the id is already present (e.g. a stale undo fired
// twice, or a duplicate remote notification), nothing changes.
func RestoreOneOffItem(s model.Shop, it model.Item) model.Shop {
	if indexOfItem(s.Lists.OneOff, it.ID) >= 0 {
		return s
	}
	s = cloneShop(s)
	s.Lists.OneOff = append([]model.Item{it}, s.Lists.OneOff...)
	return s
}

// DeleteItem removes the matching item from the named list unconditionally.
// No undo path; missing ids are a no-op.
func DeleteItem(s model.Shop, lt model.ListType, itemID string) model.Shop {
	idx := indexOfItem(s.List(lt), itemID)
	if idx < 0 {
		return s
	}
	s = cloneShop(s)
	list := s.List(lt)
	return setList(s, lt, append(list[:idx], list[idx+1:]...))
}

// RenameItem renames the matching item in the named list. No-op when the
// trimmed text is empty or the id is missing.
func RenameItem(s model.Shop, lt model.ListType, itemID, newText string) model.Shop {
	if strings.TrimSpace(newText) == "" {
		return s
	}
	idx := indexOfItem(s.List(lt), itemID)
	if idx < 0 {
		return s
	}
	s = cloneShop(s)
	list := s.List(lt)
	list[idx] = Rename(list[idx], newText)
	return s
}

// MoveItem transfers the item to the other list, prepending it there.
// Crossing lists always reactivates: completed is forced false, since one-off
// items have no completed state and a regular item rejoining as one-off must
// not appear pre-completed.
func MoveItem(s model.Shop, itemID string) model.Shop {
	src := model.ListRegular
	idx := indexOfItem(s.Lists.Regular, itemID)
	if idx < 0 {
		src = model.ListOneOff
		idx = indexOfItem(s.Lists.OneOff, itemID)
	}
	if idx < 0 {
		return s
	}

	s = cloneShop(s)
	srcList := s.List(src)
	moved := srcList[idx]
	moved.Completed = false
	s = setList(s, src, append(srcList[:idx], srcList[idx+1:]...))

	dst := model.ListOneOff
	if src == model.ListOneOff {
		dst = model.ListRegular
	}
	return setList(s, dst, append([]model.Item{moved}, s.List(dst)...))
}

// partitionIndexes returns the underlying-list positions that belong to one
// ordering partition. For the regular list the partition is the set of items
// sharing a completed state; the one-off list is a single partition.
func partitionIndexes(items []model.Item, lt model.ListType, completed bool) []int {
	idxs := make([]int, 0, len(items))
	for i := range items {
		if lt == model.ListRegular && items[i].Completed != completed {
			continue
		}
		idxs = append(idxs, i)
	}
	return idxs
}

// MoveItemOrder moves an item one position within its ordering partition.
// Boundary moves (first item up, last item down) are no-ops. Reordering one
// partition never touches the other: the two affected slots are swapped in
// place, so every other position is untouched.
func MoveItemOrder(s model.Shop, itemID string, dir model.Direction) model.Shop {
	lt := model.ListRegular
	idx := indexOfItem(s.Lists.Regular, itemID)
	if idx < 0 {
		lt = model.ListOneOff
		idx = indexOfItem(s.Lists.OneOff, itemID)
	}
	if idx < 0 {
		return s
	}

	items := s.List(lt)
	part := partitionIndexes(items, lt, items[idx].Completed)

	pos := -1
	for i, pi := range part {
		if pi == idx {
			pos = i
			break
		}
	}
	target := pos - 1
	if dir == model.DirectionDown {
		target = pos + 1
	}
	if target < 0 || target >= len(part) {
		return s
	}

	s = cloneShop(s)
	items = s.List(lt)
	items[part[pos]], items[part[target]] = items[part[target]], items[part[pos]]
	return s
}

// ReorderItems is the drag-and-drop reorder: it moves the item at dragIndex
// to hoverIndex, both partition-relative. The permuted partition is written
// back over its own slots, so the other partition's content and order are
// preserved exactly. Out-of-range indexes are a no-op.
func ReorderItems(s model.Shop, lt model.ListType, completed bool, dragIndex, hoverIndex int) model.Shop {
	items := s.List(lt)
	part := partitionIndexes(items, lt, completed)
	if dragIndex < 0 || dragIndex >= len(part) || hoverIndex < 0 || hoverIndex >= len(part) {
		return s
	}
	if dragIndex == hoverIndex {
		return s
	}

	vals := make([]model.Item, len(part))
	for i, pi := range part {
		vals[i] = items[pi]
	}
	moved := vals[dragIndex]
	vals = append(vals[:dragIndex], vals[dragIndex+1:]...)
	vals = append(vals[:hoverIndex], append([]model.Item{moved}, vals[hoverIndex:]...)...)

	s = cloneShop(s)
	items = s.List(lt)
	for i, pi := range part {
		items[pi] = vals[i]
	}
	return s
}

// SortCompletedItems orders the completed partition of the regular list
// alphabetically by text (case-insensitive). Active items and the one-off
// list are untouched.
func SortCompletedItems(s model.Shop) model.Shop {
	part := partitionIndexes(s.Lists.Regular, model.ListRegular, true)
	if len(part) < 2 {
		return s
	}

	vals := make([]model.Item, len(part))
	for i, pi := range part {
		vals[i] = s.Lists.Regular[pi]
	}
	sort.SliceStable(vals, func(i, j int) bool {
		return strings.ToLower(vals[i].Text) < strings.ToLower(vals[j].Text)
	})

	s = cloneShop(s)
	for i, pi := range part {
		s.Lists.Regular[pi] = vals[i]
	}
	return s
}
