package model

// ListType names one of the two item lists a shop carries.
type ListType string

const (
	ListRegular ListType = "regular"
	ListOneOff  ListType = "oneOff"
)

// Direction is a single-step reorder direction.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Item is a single list entry. Completed is only meaningful for regular-list
// items; one-off items are removed on completion instead of flagged.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Lists holds a shop's two item lists. Both are newest-first on add and
// otherwise user-ordered.
type Lists struct {
	Regular []Item `json:"regular"`
	OneOff  []Item `json:"oneOff"`
}

// Shop is a named shopping-list container. Icon is an opaque key into the
// UI's icon catalog; the core only passes it through. Order is the position
// among the user's shops (dense, unique, re-densified after deletion).
type Shop struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Order int    `json:"order"`
	Lists Lists  `json:"lists"`
}

// Icons is the add-time default icon catalog. The first entry is the
// fallback when a shop is created without an icon. The core never validates
// membership; the UI may offer these as a picker.
var Icons = []string{
	"ShoppingCart",
	"Store",
	"Home",
	"ShoppingBasket",
	"Car",
	"Sprout",
	"Shirt",
	"Dumbbell",
}

// List returns the named list of s. Unknown list types read as regular.
func (s *Shop) List(lt ListType) []Item {
	if lt == ListOneOff {
		return s.Lists.OneOff
	}
	return s.Lists.Regular
}
