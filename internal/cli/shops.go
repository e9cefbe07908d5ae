package cli

import (
	"shopsphere/internal/model"

	"github.com/spf13/cobra"
)

func newShopsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shops",
		Short: "Shop commands",
	}
	cmd.AddCommand(newShopsAddCmd(app))
	cmd.AddCommand(newShopsListCmd(app))
	cmd.AddCommand(newShopsShowCmd(app))
	cmd.AddCommand(newShopsEditCmd(app))
	cmd.AddCommand(newShopsDeleteCmd(app))
	cmd.AddCommand(newShopsMoveCmd(app))
	cmd.AddCommand(newShopsReorderCmd(app))
	return cmd
}

func newShopsAddCmd(app *App) *cobra.Command {
	var icon string
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a shop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, ok := s.AddShop(args[0], icon)
			if !ok {
				return writeErr(cmd, errEmptyName)
			}
			return writeOut(cmd, app, map[string]any{"data": shop})
		},
	}
	cmd.Flags().StringVar(&icon, "icon", "", "Icon name (default: "+model.Icons[0]+")")
	return cmd
}

func newShopsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shops",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()
			return writeOut(cmd, app, map[string]any{"data": s.Shops()})
		},
	}
	return cmd
}

func newShopsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <shop-id>",
		Short: "Show one shop with its lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, ok := s.Shop(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("shop", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": shop})
		},
	}
	return cmd
}

func newShopsEditCmd(app *App) *cobra.Command {
	var name string
	var icon string
	cmd := &cobra.Command{
		Use:   "edit <shop-id>",
		Short: "Edit a shop's name and icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			shop, ok := s.Shop(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("shop", args[0]))
			}
			if name == "" {
				name = shop.Name
			}
			if icon == "" {
				icon = shop.Icon
			}
			s.EditShop(shop.ID, name, icon)
			updated, _ := s.Shop(shop.ID)
			return writeOut(cmd, app, map[string]any{"data": updated})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon")
	return cmd
}

func newShopsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <shop-id>",
		Short: "Delete a shop and all its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			if _, ok := s.Shop(args[0]); !ok {
				return writeErr(cmd, errNotFound("shop", args[0]))
			}
			s.DeleteShop(args[0])
			return writeOut(cmd, app, map[string]any{"data": s.Shops()})
		},
	}
	return cmd
}

func newShopsMoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <shop-id> <up|down>",
		Short: "Move a shop one position",
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

			if _, ok := s.Shop(args[0]); !ok {
				return writeErr(cmd, errNotFound("shop", args[0]))
			}
			s.MoveShopOrder(args[0], dir)
			return writeOut(cmd, app, map[string]any{"data": s.Shops()})
		},
	}
	return cmd
}

func newShopsReorderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder <from-index> <to-index>",
		Short: "Move the shop at from-index to to-index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := parseIndexes(args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer s.Close()

			s.ReorderShops(from, to)
			return writeOut(cmd, app, map[string]any{"data": s.Shops()})
		},
	}
	return cmd
}
