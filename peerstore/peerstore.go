// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package peerstore persists and loads the node's one durable file:
// the known-peers table. Written on
// graceful shutdown, loaded on boot.
package peerstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Peer is one entry of the cached-peers table.
type Peer struct {
	PeerID string `toml:"peer_id"`
	Addr   string `toml:"addr"`
}

// Table is the on-disk TOML document's root shape:
// {peers: [{peer_id, addr}]}.
type Table struct {
	Peers []Peer `toml:"peers"`
}

// Load reads path's cached-peers table. A missing file is not an
// error: it reports an empty table, the shape a first boot sees.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return Table{}, fmt.Errorf("peerstore: reading %q: %w", path, err)
	}

	var t Table
	if err := toml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("peerstore: parsing %q: %w", path, err)
	}
	return t, nil
}

// Save writes t to path, creating its parent directory if needed.
// Called on graceful shutdown so the next boot can reconnect without
// rediscovery.
func Save(path string, t Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("peerstore: creating %q: %w", dir, err)
		}
	}

	data, err := toml.Marshal(t)
	if err != nil {
		return fmt.Errorf("peerstore: encoding %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("peerstore: writing %q: %w", path, err)
	}
	return nil
}

// Upsert adds peer to t, replacing any existing entry with the same
// PeerID, and returns the updated table.
func (t Table) Upsert(peer Peer) Table {
	for i, p := range t.Peers {
		if p.PeerID == peer.PeerID {
			t.Peers[i] = peer
			return t
		}
	}
	t.Peers = append(t.Peers, peer)
	return t
}

// Remove drops peerID from t, if present.
func (t Table) Remove(peerID string) Table {
	out := t.Peers[:0]
	for _, p := range t.Peers {
		if p.PeerID != peerID {
			out = append(out, p)
		}
	}
	t.Peers = out
	return t
}
