package catalog

import (
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// WriteSnapshot encodes snap as msgpack.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	if err := msgpack.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes a msgpack snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
