// Package sync is the remote mode: a websocket channel carrying per-user
// shop documents between a sqlite-backed server and subscribing clients.
// The server pushes a full snapshot on connect and after every mutation;
// clients issue document mutations without waiting for confirmation and
// treat the next snapshot as authoritative. Conflict policy is
// last-writer-wins per shop document; concurrent deltas to the same shop
// are not merged.
package sync

import "shopsphere/internal/model"

const (
	frameSnapshot = "snapshot"
	framePut      = "put"
	frameDelete   = "delete"
	frameReplace  = "replace"
)

type frame struct {
	Type   string       `json:"type"`
	Shops  []model.Shop `json:"shops,omitempty"`
	Shop   *model.Shop  `json:"shop,omitempty"`
	ShopID string       `json:"shopId,omitempty"`
}
