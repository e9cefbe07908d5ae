package mutate

import (
	"strings"

	"shopsphere/internal/model"
)

func cloneShops(in []model.Shop) []model.Shop {
	out := make([]model.Shop, len(in))
	for i := range in {
		out[i] = cloneShop(in[i])
	}
	return out
}

func indexOfShop(shops []model.Shop, shopID string) int {
	for i := range shops {
		if shops[i].ID == shopID {
			return i
		}
	}
	return -1
}

// FindShop returns the shop with the given id.
func FindShop(shops []model.Shop, shopID string) (model.Shop, bool) {
	idx := indexOfShop(shops, shopID)
	if idx < 0 {
		return model.Shop{}, false
	}
	return shops[idx], true
}

// ReplaceShop swaps the matching shop for its updated version. No-op when the
// id is missing (the shop may have been deleted remotely in the meantime).
func ReplaceShop(shops []model.Shop, updated model.Shop) []model.Shop {
	idx := indexOfShop(shops, updated.ID)
	if idx < 0 {
		return shops
	}
	out := cloneShops(shops)
	out[idx] = cloneShop(updated)
	return out
}

// NormalizeOrder re-densifies shop order values to 0..n-1 in slice position
// order. Keeps persisted order values from drifting or colliding across
// repeated deletions.
func NormalizeOrder(shops []model.Shop) []model.Shop {
	out := cloneShops(shops)
	for i := range out {
		out[i].Order = i
	}
	return out
}

// AddShop appends a shop with a fresh id, empty lists, and the next order
// value. An empty icon falls back to the catalog default. No-op when the
// trimmed name is empty.
func AddShop(shops []model.Shop, name, icon string) ([]model.Shop, model.Shop, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return shops, model.Shop{}, false
	}
	if strings.TrimSpace(icon) == "" {
		icon = model.Icons[0]
	}

	next := 0
	for i := range shops {
		if shops[i].Order >= next {
			next = shops[i].Order + 1
		}
	}
	shop := model.Shop{
		ID:    model.NewID("shop"),
		Name:  name,
		Icon:  icon,
		Order: next,
	}
	out := append(cloneShops(shops), shop)
	return out, shop, true
}

// EditShop replaces display metadata of the matching shop; lists untouched.
// No-op on missing id or empty trimmed name.
func EditShop(shops []model.Shop, shopID, name, icon string) []model.Shop {
	name = strings.TrimSpace(name)
	if name == "" {
		return shops
	}
	idx := indexOfShop(shops, shopID)
	if idx < 0 {
		return shops
	}
	out := cloneShops(shops)
	out[idx].Name = name
	out[idx].Icon = strings.TrimSpace(icon)
	return out
}

// DeleteShop removes the matching shop and its items, then re-densifies the
// remaining order values.
func DeleteShop(shops []model.Shop, shopID string) []model.Shop {
	idx := indexOfShop(shops, shopID)
	if idx < 0 {
		return shops
	}
	out := cloneShops(shops)
	out = append(out[:idx], out[idx+1:]...)
	return NormalizeOrder(out)
}

// MoveShopOrder swaps the matching shop with its neighbor in the given
// direction. Boundary moves are a no-op.
func MoveShopOrder(shops []model.Shop, shopID string, dir model.Direction) []model.Shop {
	idx := indexOfShop(shops, shopID)
	if idx < 0 {
		return shops
	}
	target := idx - 1
	if dir == model.DirectionDown {
		target = idx + 1
	}
	if target < 0 || target >= len(shops) {
		return shops
	}
	out := cloneShops(shops)
	out[idx], out[target] = out[target], out[idx]
	return NormalizeOrder(out)
}

// ReorderShops moves the shop at dragIndex to hoverIndex. Out-of-range
// indexes are a no-op.
func ReorderShops(shops []model.Shop, dragIndex, hoverIndex int) []model.Shop {
	if dragIndex < 0 || dragIndex >= len(shops) || hoverIndex < 0 || hoverIndex >= len(shops) {
		return shops
	}
	if dragIndex == hoverIndex {
		return shops
	}
	out := cloneShops(shops)
	moved := out[dragIndex]
	out = append(out[:dragIndex], out[dragIndex+1:]...)
	out = append(out[:hoverIndex], append([]model.Shop{moved}, out[hoverIndex:]...)...)
	return NormalizeOrder(out)
}
