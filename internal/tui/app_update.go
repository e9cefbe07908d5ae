package tui

import (
	"strings"

	"shopsphere/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.shopsList.SetSize(msg.Width, maxInt(1, msg.Height-4))
		return m, nil

	case collectionChangedMsg:
		m.refreshShops()
		if m.view == viewShop {
			if _, ok := m.currentShop(); !ok {
				// Shop vanished (deleted on another device): fall back.
				m.view = viewShops
				m.closeModal()
			}
			m.clampItemIdx()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewShop:
			return m.updateShopView(msg)
		default:
			return m.updateShopsView(msg)
		}
	}

	var cmd tea.Cmd
	m.shopsList, cmd = m.shopsList.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDeleteShop:
		switch msg.String() {
		case "y", "enter":
			m.session.DeleteShop(m.modalForID)
			if m.selectedShopID == m.modalForID {
				m.view = viewShops
				m.selectedShopID = ""
			}
			m.closeModal()
			m.refreshShops()
		case "n", "esc":
			m.closeModal()
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab":
		if m.modal == modalAddShop || m.modal == modalEditShop {
			m.iconIdx = (m.iconIdx + 1) % len(model.Icons)
			return m, nil
		}
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		switch m.modal {
		case modalAddShop:
			m.session.AddShop(text, model.Icons[m.iconIdx])
			m.closeModal()
			m.refreshShops()
		case modalEditShop:
			m.session.EditShop(m.modalForID, text, model.Icons[m.iconIdx])
			m.closeModal()
			m.refreshShops()
		case modalAddItem:
			m.session.AddItem(m.selectedShopID, m.activeList, text)
			// Stay open for quick consecutive entry.
			m.input.SetValue("")
			m.itemIdx = 0
		case modalRenameItem:
			m.session.RenameItem(m.selectedShopID, m.activeList, m.modalForID, text)
			m.closeModal()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateShopsView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is active, every key belongs to the list.
	if m.shopsList.SettingFilter() {
		var cmd tea.Cmd
		m.shopsList, cmd = m.shopsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		if id := m.cursorShopID(); id != "" {
			m.selectedShopID = id
			m.view = viewShop
			m.activeList = model.ListRegular
			m.itemIdx = 0
		}
		return m, nil
	case "a":
		m.iconIdx = 0
		m.openModal(modalAddShop, "", "", "e.g. Groceries")
		return m, nil
	case "r", "e":
		if s, ok := m.session.Shop(m.cursorShopID()); ok {
			m.iconIdx = iconIndex(s.Icon)
			m.openModal(modalEditShop, s.ID, s.Name, "")
		}
		return m, nil
	case "d":
		if id := m.cursorShopID(); id != "" {
			m.openModal(modalConfirmDeleteShop, id, "", "")
		}
		return m, nil
	case "K":
		if id := m.cursorShopID(); id != "" {
			m.session.MoveShopOrder(id, model.DirectionUp)
			m.refreshShops()
		}
		return m, nil
	case "J":
		if id := m.cursorShopID(); id != "" {
			m.session.MoveShopOrder(id, model.DirectionDown)
			m.refreshShops()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.shopsList, cmd = m.shopsList.Update(msg)
	return m, cmd
}

func (m appModel) updateShopView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.view = viewShops
		m.refreshShops()
		return m, nil
	case "tab":
		if m.activeList == model.ListRegular {
			m.activeList = model.ListOneOff
		} else {
			m.activeList = model.ListRegular
		}
		m.itemIdx = 0
		return m, nil
	case "up", "k":
		m.itemIdx--
		m.clampItemIdx()
		return m, nil
	case "down", "j":
		m.itemIdx++
		m.clampItemIdx()
		return m, nil
	case "a":
		m.openModal(modalAddItem, "", "", "e.g. Milk")
		return m, nil
	case "enter", " ":
		if it, ok := m.cursorItem(); ok {
			if m.activeList == model.ListOneOff {
				m.session.CompleteOneOffItem(m.selectedShopID, it.ID)
			} else {
				m.session.ToggleRegularItem(m.selectedShopID, it.ID)
			}
			m.clampItemIdx()
		}
		return m, nil
	case "u":
		m.session.UndoRemoval()
		return m, nil
	case "d":
		if it, ok := m.cursorItem(); ok {
			m.session.DeleteItem(m.selectedShopID, m.activeList, it.ID)
			m.clampItemIdx()
		}
		return m, nil
	case "r":
		if it, ok := m.cursorItem(); ok {
			m.openModal(modalRenameItem, it.ID, it.Text, "")
		}
		return m, nil
	case "m":
		if it, ok := m.cursorItem(); ok {
			m.session.MoveItem(m.selectedShopID, it.ID)
			m.clampItemIdx()
		}
		return m, nil
	case "K":
		m.moveCursorItem(model.DirectionUp)
		return m, nil
	case "J":
		m.moveCursorItem(model.DirectionDown)
		return m, nil
	case "S":
		if m.activeList == model.ListRegular {
			m.session.SortCompletedItems(m.selectedShopID)
		}
		return m, nil
	}
	return m, nil
}

// moveCursorItem swaps the item under the cursor with its neighbor inside
// its own partition and keeps the cursor on the moved item.
func (m *appModel) moveCursorItem(dir model.Direction) {
	it, ok := m.cursorItem()
	if !ok {
		return
	}
	m.session.MoveItemOrder(m.selectedShopID, it.ID, dir)
	shop, ok := m.currentShop()
	if !ok {
		return
	}
	for idx, row := range displayRows(shop, m.activeList) {
		if row.ID == it.ID {
			m.itemIdx = idx
			return
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
