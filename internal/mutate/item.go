// Package mutate implements every list-level and collection-level intent as a
// pure transform. Functions take values and return new values; inputs are
// never mutated. Domain-level misses (unknown ids, empty trimmed text) are
// silent no-ops rather than errors: any intent can legitimately race against a
// concurrent remote update, so a stale reference is benign.
package mutate

import (
	"strings"

	"shopsphere/internal/model"
)

// NewItem creates an item with a fresh id. Returns ok=false when the trimmed
// text is empty.
func NewItem(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	return model.Item{
		ID:        model.NewID("item"),
		Text:      text,
		Completed: false,
	}, true
}

// ToggleCompleted flips the completed flag. Only meaningful for regular-list
// items; one-off completion goes through RemoveOneOffItem instead.
func ToggleCompleted(it model.Item) model.Item {
	it.Completed = !it.Completed
	return it
}

// Rename replaces the item text with the trimmed newText. No-op when the
// trimmed result is empty.
func Rename(it model.Item, newText string) model.Item {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return it
	}
	it.Text = newText
	return it
}
