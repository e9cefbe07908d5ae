// Package store persists the shop collection. Two modes exist: a local
// single-device JSON file, and (server side of remote mode) a per-user
// document table in SQLite. Both speak the same wire shape as internal/model.
package store

import (
	"os"
	"path/filepath"

	"shopsphere/internal/model"
)

const shopsFileName = "shops.json"

// Adapter is the persistence seam the session owns. Local adapters implement
// Subscribe by invoking onChange once with the loaded collection and
// returning a no-op unsubscribe; remote adapters keep a live channel open
// and deliver every server-side change (initial load included).
type Adapter interface {
	Load() ([]model.Shop, error)
	Save(shops []model.Shop) error
	Subscribe(identity string, onChange func([]model.Shop)) (unsubscribe func(), err error)
}

// ShopWriter is the targeted-mutation surface remote adapters expose on top
// of Adapter: instead of rewriting the whole collection, a single shop
// document is put or deleted. Local adapters don't implement it; callers
// fall back to Save.
type ShopWriter interface {
	PutShop(s model.Shop) error
	DeleteShopDoc(shopID string) error
}

// DiscoverDir walks up from start looking for an existing .shopsphere dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".shopsphere")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data dir: a discovered .shopsphere above the cwd,
// else ~/.shopsphere, else .shopsphere under the cwd.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".shopsphere"), nil
	}
	return filepath.Join(cwd, ".shopsphere"), nil
}
