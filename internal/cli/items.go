package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shopsphere/internal/model"
	"shopsphere/internal/session"

	"github.com/spf13/cobra"
)

var errEmptyName = errors.New("name must not be empty")

func parseListType(s string) (model.ListType, error) {
	switch strings.TrimSpace(s) {
	case "regular", "":
		return model.ListRegular, nil
	case "oneOff", "oneoff", "one-off":
		return model.ListOneOff, nil
	default:
		return "", fmt.Errorf("unknown list type %q (regular|oneOff)", s)
	}
}

func parseDirection(s string) (model.Direction, error) {
	switch strings.TrimSpace(s) {
	case "up":
		return model.DirectionUp, nil
	case "down":
		return model.DirectionDown, nil
	default:
		return "", fmt.Errorf("unknown direction %q (up|down)", s)
	}
}

func parseIndexes(a, b string) (int, int, error) {
	from, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return 0, 0, fmt.Errorf("bad index %q", a)
	}
	to, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return 0, 0, fmt.Errorf("bad index %q", b)
	}
	return from, to, nil
}

// requireShop resolves the --shop flag against the loaded collection.
func requireShop(s *session.Session, shopID string) (model.Shop, error) {
	shop, ok := s.Shop(strings.TrimSpace(shopID))
	if !ok {
		return model.Shop{}, errNotFound("shop", shopID)
	}
	return shop, nil
}

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsToggleCmd(app))
	cmd.AddCommand(newItemsRemoveCmd(app))
	cmd.AddCommand(newItemsRestoreCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsRenameCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsMoveOrderCmd(app))
	cmd.AddCommand(newItemsReorderCmd(app))
	cmd.AddCommand(newItemsSortCompletedCmd(app))
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var shopID string
	var listType string
	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add an item (newest-first)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lt, err := parseListType(listType)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.AddItem(shop.ID, lt, args[0])
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	cmd.Flags().StringVar(&listType, "list", "regular", "List (regular|oneOff)")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsToggleCmd(app *App) *cobra.Command {
	var shopID string
	cmd := &cobra.Command{
		Use:   "toggle <item-id>",
		Short: "Toggle completion of a regular item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.ToggleRegularItem(shop.ID, args[0])
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsRemoveCmd(app *App) *cobra.Command {
	var shopID string
	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Complete (remove) a one-off item",
		Long: strings.TrimSpace(`
Complete a one-off item by removing it from the list. In the TUI this opens
a short undo window; from the CLI the removal is immediate. Use "items add"
to re-add, or "items delete" for items on the regular list.
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			removed, ok := s.CompleteOneOffItem(shop.ID, args[0])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": removed})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsRestoreCmd(app *App) *cobra.Command {
	var shopID string
	cmd := &cobra.Command{
		Use:   "restore <item-id> <text>",
		Short: "Restore a removed one-off item",
		Long: strings.TrimSpace(`
Re-add a one-off item that was removed by "items remove", keeping its
original id. Restoring an id that is already present is a no-op, so the
command is safe to repeat.
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.RestoreOneOffItem(shop.ID, model.Item{ID: strings.TrimSpace(args[0]), Text: args[1]})
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	var shopID string
	var listType string
	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lt, err := parseListType(listType)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.DeleteItem(shop.ID, lt, args[0])
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	cmd.Flags().StringVar(&listType, "list", "regular", "List (regular|oneOff)")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsRenameCmd(app *App) *cobra.Command {
	var shopID string
	var listType string
	cmd := &cobra.Command{
		Use:   "rename <item-id> <new-text>",
		Short: "Rename an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lt, err := parseListType(listType)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.RenameItem(shop.ID, lt, args[0], args[1])
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	cmd.Flags().StringVar(&listType, "list", "regular", "List (regular|oneOff)")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var shopID string
	cmd := &cobra.Command{
		Use:   "move <item-id>",
		Short: "Move an item to the shop's other list (reactivates it)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.MoveItem(shop.ID, args[0])
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsMoveOrderCmd(app *App) *cobra.Command {
	var shopID string
	cmd := &cobra.Command{
		Use:   "move-order <item-id> <up|down>",
		Short: "Move an item one position within its partition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := parseDirection(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.MoveItemOrder(shop.ID, args[0], dir)
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsReorderCmd(app *App) *cobra.Command {
	var shopID string
	var listType string
	var completed bool
	cmd := &cobra.Command{
		Use:   "reorder <from-index> <to-index>",
		Short: "Move an item to any position within its partition",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lt, err := parseListType(listType)
			if err != nil {
				return writeErr(cmd, err)
			}
			from, to, err := parseIndexes(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.ReorderItems(shop.ID, lt, completed, from, to)
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	cmd.Flags().StringVar(&listType, "list", "regular", "List (regular|oneOff)")
	cmd.Flags().BoolVar(&completed, "completed", false, "Reorder within the completed partition")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}

func newItemsSortCompletedCmd(app *App) *cobra.Command {
	var shopID string
	cmd := &cobra.Command{
		Use:   "sort-completed",
		Short: "Alphabetize the completed partition of the regular list",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, err := requireShop(s, shopID)
			if err != nil {
				return writeErr(cmd, err)
			}
			s.SortCompletedItems(shop.ID)
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id")
	_ = cmd.MarkFlagRequired("shop")
	return cmd
}
