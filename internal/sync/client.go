package sync

import (
	"errors"
	"log"
	"net/url"
	gosync "sync"
	"time"

	"shopsphere/internal/model"

	"github.com/gorilla/websocket"
)

// Client is the remote persistence adapter. Subscribe keeps one websocket
// open per identity; writes go out as per-document mutation frames on the
// same connection and are not awaited. The in-memory collection the caller
// holds is optimistic until the next snapshot arrives.
type Client struct {
	// BaseURL of the sync server, e.g. ws://localhost:8377.
	BaseURL string

	mu       gosync.Mutex
	conn     *websocket.Conn
	snapshot []model.Shop
}

var errNotSubscribed = errors.New("sync: not subscribed")

func (c *Client) wsURL(identity string) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", errors.New("sync: unsupported scheme " + u.Scheme)
	}
	u.Path = "/ws"
	q := u.Query()
	q.Set("user", identity)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Subscribe dials the server and delivers every snapshot to onChange. The
// initial snapshot is read and delivered before Subscribe returns, so
// callers see server state immediately (one-shot commands resolve ids
// against it right after subscribing). Later read failures end the
// subscription: they are logged and the last delivered collection stays
// as-is (stale beats a spinner). The returned func closes the channel.
func (c *Client) Subscribe(identity string, onChange func([]model.Shop)) (func(), error) {
	addr, err := c.wsURL(identity)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, err
	}

	first, err := readFirstSnapshot(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.conn = conn
	c.snapshot = first
	c.mu.Unlock()
	onChange(first)

	go func() {
		for {
			var f frame
			if err := conn.ReadJSON(&f); err != nil {
				log.Printf("sync: subscription ended: %v", err)
				return
			}
			if f.Type != frameSnapshot {
				continue
			}
			shops := f.Shops
			if shops == nil {
				shops = []model.Shop{}
			}
			c.mu.Lock()
			c.snapshot = shops
			c.mu.Unlock()
			onChange(shops)
		}
	}()

	unsubscribe := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.conn == conn {
			c.conn = nil
		}
		_ = conn.Close()
	}
	return unsubscribe, nil
}

// readFirstSnapshot blocks until the server's on-connect snapshot arrives.
// Non-snapshot frames before it are skipped.
func readFirstSnapshot(conn *websocket.Conn) ([]model.Shop, error) {
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	defer func() { _ = conn.SetReadDeadline(time.Time{}) }()
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return nil, err
		}
		if f.Type != frameSnapshot {
			continue
		}
		if f.Shops == nil {
			return []model.Shop{}, nil
		}
		return f.Shops, nil
	}
}

// Load returns the last received snapshot. Remote state is authoritative
// only via the subscription; before the first snapshot this is empty.
func (c *Client) Load() ([]model.Shop, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return []model.Shop{}, nil
	}
	return c.snapshot, nil
}

// Save replaces the user's whole collection. Used for collection-level
// reorders, where every order value changes anyway.
func (c *Client) Save(shops []model.Shop) error {
	return c.write(frame{Type: frameReplace, Shops: shops})
}

// PutShop upserts one shop document (last-writer-wins).
func (c *Client) PutShop(s model.Shop) error {
	return c.write(frame{Type: framePut, Shop: &s})
}

// DeleteShopDoc removes one shop document; the server densifies the
// remaining order values.
func (c *Client) DeleteShopDoc(shopID string) error {
	return c.write(frame{Type: frameDelete, ShopID: shopID})
}

func (c *Client) write(f frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errNotSubscribed
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(f)
}
