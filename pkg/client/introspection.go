package client

import (
	"github.com/aretw0/introspection"
)

// ClientState exposes internal state for observability.
type ClientState struct {
	Configured     bool   `json:"configured"`
	State          string `json:"state"`
	Generation     uint64 `json:"generation"`
	CachedVersions int    `json:"cached_versions"`
	SavePending    bool   `json:"save_pending"`
	StoreType      string `json:"store_type"`
}

// IntrospectionState returns a diagnostics snapshot. The conflict-protocol
// state is available directly via (*Client).State; this export carries the
// full picture.
func (c *Client) IntrospectionState() any {
	storeType := "none"
	if c.store != nil {
		storeType = "store"
		if comp, ok := c.store.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}

	return ClientState{
		Configured:     c.Configured(),
		State:          string(c.State()),
		Generation:     c.saver.generation(),
		CachedVersions: c.versions.len(),
		SavePending:    c.saver.busy(),
		StoreType:      storeType,
	}
}

// ComponentType implements introspection.Component.
func (c *Client) ComponentType() string {
	return "sync-client"
}

var _ introspection.Component = (*Client)(nil)
