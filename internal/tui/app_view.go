package tui

import (
	"fmt"
	"strings"

	"shopsphere/internal/model"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	var help string
	switch m.view {
	case viewShop:
		body = m.viewShopScreen()
		help = "a add  space toggle  u undo  r rename  d delete  m move list  J/K reorder  S sort done  tab lists  esc back"
	default:
		body = m.viewShopsScreen()
		help = "enter open  a add  e edit  d delete  J/K reorder  / filter  q quit"
	}

	footer := m.footerLine(help)
	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap < 0 {
		gap = 0
	}
	return body + strings.Repeat("\n", gap) + footer
}

func (m appModel) viewShopsScreen() string {
	header := styleHeader().Render(" Shopsphere ")
	if !m.session.Loaded() {
		header += styleMuted().Render(" syncing...")
	}
	if len(m.shopsList.Items()) == 0 && !m.shopsList.SettingFilter() {
		empty := styleMuted().Render("\n No shops yet. Press a to add one.")
		return header + "\n" + empty
	}
	return header + "\n" + m.shopsList.View()
}

func (m appModel) viewShopScreen() string {
	shop, ok := m.currentShop()
	if !ok {
		return styleMuted().Render(" Shop not found.")
	}

	var b strings.Builder
	b.WriteString(styleHeader().Render(" " + shop.Name + " "))
	b.WriteString(styleMuted().Render("[" + shop.Icon + "]"))
	b.WriteString("\n")
	b.WriteString(m.tabsLine())
	b.WriteString("\n")

	rows := displayRows(shop, m.activeList)
	if len(rows) == 0 {
		b.WriteString(styleMuted().Render(" Empty. Press a to add an item."))
		b.WriteString("\n")
	}
	for idx, it := range rows {
		b.WriteString(m.renderItemRow(idx, it))
		b.WriteString("\n")
	}
	return b.String()
}

func (m appModel) tabsLine() string {
	regular := " Every visit "
	oneOff := " One-off "
	active := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(colorAccent)
	if m.activeList == model.ListOneOff {
		return styleMuted().Render(regular) + active.Render(oneOff)
	}
	return active.Render(regular) + styleMuted().Render(oneOff)
}

func (m appModel) renderItemRow(idx int, it model.Item) string {
	marker := "[ ]"
	if m.activeList == model.ListOneOff {
		marker = " * "
	} else if it.Completed {
		marker = "[x]"
	}

	line := fmt.Sprintf(" %s %s", marker, it.Text)
	if it.Completed {
		line = styleMuted().Strikethrough(true).Render(line)
	}
	if idx == m.itemIdx {
		w := xansi.StringWidth(line)
		if w < m.width {
			line += strings.Repeat(" ", m.width-w)
		}
		return styleSelected().Render(line)
	}
	return line
}

// footerLine renders the bottom row: an input minibuffer while a modal is
// open, the undo toast while a removal is pending, otherwise key help.
func (m appModel) footerLine(help string) string {
	if m.modal != modalNone {
		prompt := m.modalPrompt()
		if m.modal == modalConfirmDeleteShop {
			return lipgloss.NewStyle().Bold(true).Render(" " + prompt)
		}
		in := strings.ReplaceAll(m.input.View(), "\n", " ")
		line := " " + prompt + " " + in
		if xansi.StringWidth(line) > m.width {
			line = xansi.Cut(line, 0, m.width) + "\x1b[0m"
		}
		return lipgloss.NewStyle().Background(colorInputBg).Render(line)
	}

	if m.view == viewShop {
		if it, ok := m.session.PendingRemoval(); ok {
			toast := fmt.Sprintf(" Completed %q. Press u to undo. ", it.Text)
			return lipgloss.NewStyle().Background(colorToastBg).Foreground(colorToastFg).Render(toast)
		}
	}
	return styleMuted().Render(" " + help)
}
