// Package ident mints and tracks the 8-hex-character identifiers every
// first-class entity in a Document owns, the way confignew.NameIDBinding
// binds names to small integer IDs in the teacher repo, but for a
// document-wide, collision-checked identifier space instead of a
// register-file index.
package ident

import (
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/rs/xid"
)

// ID is an 8-hex-character identifier, stable across persistence
// round-trips.
type ID string

// Empty is the zero value, used by Junctions (which have no owning
// Component) and by Wires whose second endpoint hasn't been authored yet.
const Empty ID = ""

// Valid reports whether id looks like a well-formed 8-hex-character ID.
func (id ID) Valid() bool {
	if len(id) != 8 {
		return false
	}
	_, err := hex.DecodeString(string(id))
	return err == nil
}

// Registry mints document-unique IDs and refuses duplicates, per spec
// §3.2. It also supports releasing an ID on entity deletion so it can be
// reissued.
type Registry struct {
	mu   sync.Mutex
	used map[ID]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{used: make(map[ID]struct{})}
}

// New mints a fresh, registry-unique ID. Uniqueness is sourced from
// xid.New(), folded to 4 bytes with FNV-1a and hex-encoded; a collision
// (vanishingly unlikely at 32 bits of space, but checked rather than
// assumed) is resolved by folding again with a salted counter.
func (r *Registry) New() ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	salt := 0
	for {
		id := foldToID(xid.New().Bytes(), salt)
		if _, taken := r.used[id]; !taken {
			r.used[id] = struct{}{}
			return id
		}
		salt++
	}
}

// Register adds an externally-sourced ID (e.g. one loaded from a
// persisted document) to the registry, failing if it is already taken or
// malformed. This is how persist.Load enforces P4 (identifier uniqueness)
// across a whole document.
func (r *Registry) Register(id ID) error {
	if !id.Valid() {
		return fmt.Errorf("ident: malformed id %q", string(id))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.used[id]; taken {
		return fmt.Errorf("ident: duplicate id %q", string(id))
	}
	r.used[id] = struct{}{}
	return nil
}

// Release frees id for reissue, called on entity deletion.
func (r *Registry) Release(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.used, id)
}

// Len returns the number of currently registered IDs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.used)
}

func foldToID(src []byte, salt int) ID {
	h := fnv.New32a()
	_, _ = h.Write(src)
	if salt != 0 {
		_, _ = fmt.Fprintf(h, "#%d", salt)
	}
	return ID(hex.EncodeToString(h.Sum(nil)))
}
