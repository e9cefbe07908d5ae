package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"shopsphere/internal/model"
)

// Local stores the whole collection as one JSON array under a fixed file
// name in Dir. Single device-wide collection; no per-user namespacing.
type Local struct {
	Dir string
}

func (l Local) Ensure() error {
	return os.MkdirAll(l.Dir, 0o755)
}

func (l Local) path() string {
	return filepath.Join(l.Dir, shopsFileName)
}

// Load reads the collection. An absent file or a parse failure yields an
// empty collection: corrupt local state is logged and dropped, never fatal.
func (l Local) Load() ([]model.Shop, error) {
	b, err := os.ReadFile(l.path())
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: read %s: %v", l.path(), err)
		}
		return []model.Shop{}, nil
	}
	var shops []model.Shop
	if err := json.Unmarshal(b, &shops); err != nil {
		log.Printf("store: parse %s: %v", l.path(), err)
		return []model.Shop{}, nil
	}
	if shops == nil {
		shops = []model.Shop{}
	}
	return shops, nil
}

// Save serializes the full collection on every change, via tmp+rename so a
// crash mid-write can't leave a truncated file.
func (l Local) Save(shops []model.Shop) error {
	if err := l.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(shops, "", "  ")
	if err != nil {
		return err
	}
	tmp := l.path() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, l.path())
}

// Subscribe delivers the current collection once. Local mode has no live
// channel; identity is ignored (the collection is device-wide).
func (l Local) Subscribe(identity string, onChange func([]model.Shop)) (func(), error) {
	shops, err := l.Load()
	if err != nil {
		return nil, err
	}
	onChange(shops)
	return func() {}, nil
}
