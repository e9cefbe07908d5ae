package tui

import (
	"fmt"
	"strings"

	"shopsphere/internal/model"
	"shopsphere/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

type view int

const (
	viewShops view = iota
	viewShop
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAddShop
	modalEditShop
	modalConfirmDeleteShop
	modalAddItem
	modalRenameItem
)

type collectionChangedMsg struct{}

type appModel struct {
	session *session.Session

	width  int
	height int

	view           view
	shopsList      list.Model
	selectedShopID string

	// Shop screen state. itemIdx indexes the display rows: for the regular
	// list that is active items followed by completed items, for the one-off
	// list just the items in order.
	activeList model.ListType
	itemIdx    int

	modal      modalKind
	modalForID string
	input      textinput.Model
	iconIdx    int
}

func newAppModel(s *session.Session) appModel {
	in := textinput.New()
	in.CharLimit = 120
	in.Prompt = "> "

	m := appModel{
		session:    s,
		view:       viewShops,
		shopsList:  newShopsList(nil),
		activeList: model.ListRegular,
		input:      in,
	}
	m.refreshShops()
	return m
}

func newShopsList(items []list.Item) list.Model {
	l := list.New(items, newShopDelegate(), 0, 0)
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("shop", "shops")
	// ESC is "cancel/back" in this app, not quit.
	l.KeyMap.Quit.SetKeys("q")
	return l
}

type shopRowItem struct {
	shop model.Shop
}

func (i shopRowItem) FilterValue() string { return i.shop.Name }

func (i shopRowItem) Title() string {
	active, completed := 0, 0
	for _, it := range i.shop.Lists.Regular {
		if it.Completed {
			completed++
		} else {
			active++
		}
	}
	counts := fmt.Sprintf("%d open", active+len(i.shop.Lists.OneOff))
	if completed > 0 {
		counts += fmt.Sprintf(", %d done", completed)
	}
	return fmt.Sprintf("%s  %s", i.shop.Name, styleMuted().Render("("+counts+")"))
}

// refreshShops rebuilds the shops list from the session, keeping the cursor
// on the same shop when it still exists.
func (m *appModel) refreshShops() {
	shops := m.session.Shops()
	items := make([]list.Item, 0, len(shops))
	for _, s := range shops {
		items = append(items, shopRowItem{shop: s})
	}
	keep := m.cursorShopID()
	m.shopsList.SetItems(items)
	if keep != "" {
		for idx, s := range shops {
			if s.ID == keep {
				m.shopsList.Select(idx)
				break
			}
		}
	}
}

func (m appModel) cursorShopID() string {
	if it, ok := m.shopsList.SelectedItem().(shopRowItem); ok {
		return it.shop.ID
	}
	return ""
}

func (m appModel) currentShop() (model.Shop, bool) {
	return m.session.Shop(m.selectedShopID)
}

// displayRows returns the visible rows of the active list in display order.
// The regular list shows active items first, then completed ones; indexes
// into the result are what itemIdx means.
func displayRows(shop model.Shop, lt model.ListType) []model.Item {
	items := shop.List(lt)
	if lt != model.ListRegular {
		return items
	}
	rows := make([]model.Item, 0, len(items))
	for _, it := range items {
		if !it.Completed {
			rows = append(rows, it)
		}
	}
	for _, it := range items {
		if it.Completed {
			rows = append(rows, it)
		}
	}
	return rows
}

func (m *appModel) clampItemIdx() {
	shop, ok := m.currentShop()
	if !ok {
		m.itemIdx = 0
		return
	}
	n := len(displayRows(shop, m.activeList))
	if m.itemIdx >= n {
		m.itemIdx = n - 1
	}
	if m.itemIdx < 0 {
		m.itemIdx = 0
	}
}

func (m appModel) cursorItem() (model.Item, bool) {
	shop, ok := m.currentShop()
	if !ok {
		return model.Item{}, false
	}
	rows := displayRows(shop, m.activeList)
	if m.itemIdx < 0 || m.itemIdx >= len(rows) {
		return model.Item{}, false
	}
	return rows[m.itemIdx], true
}

func (m *appModel) openModal(kind modalKind, forID, prefill, placeholder string) {
	m.modal = kind
	m.modalForID = forID
	m.input.Placeholder = placeholder
	m.input.SetValue(prefill)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalForID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) modalPrompt() string {
	switch m.modal {
	case modalAddShop, modalEditShop:
		return fmt.Sprintf("Shop name [%s icon, tab to change]:", model.Icons[m.iconIdx])
	case modalConfirmDeleteShop:
		name := ""
		if s, ok := m.session.Shop(m.modalForID); ok {
			name = s.Name
		}
		return fmt.Sprintf("Delete shop %q and all its items? (y/n)", name)
	case modalAddItem:
		if m.activeList == model.ListOneOff {
			return "Add one-off item:"
		}
		return "Add item:"
	case modalRenameItem:
		return "Rename item:"
	}
	return ""
}

func iconIndex(icon string) int {
	for i, name := range model.Icons {
		if strings.EqualFold(name, icon) {
			return i
		}
	}
	return 0
}
