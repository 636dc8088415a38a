package cart

import (
	"bytes"
	"encoding/json"
)

// SnapshotVersion tags the persisted snapshot shape. Bump it when the
// LineItem wire shape changes incompatibly.
const SnapshotVersion = "2"

// Snapshot is the persisted form of the line item store: the ordered item
// list wrapped in a versioned envelope.
type Snapshot struct {
	Version string     `json:"version"`
	Items   []LineItem `json:"items"`
}

// EncodeSnapshot serializes items into the versioned envelope.
func EncodeSnapshot(items []LineItem) ([]byte, error) {
	return json.Marshal(Snapshot{Version: SnapshotVersion, Items: items})
}

// DecodeSnapshot deserializes a stored snapshot. Missing, corrupt, or
// version-mismatched data yields an empty list rather than an error; a bare
// item array from the pre-envelope format is migrated best-effort.
func DecodeSnapshot(data []byte) []LineItem {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	// Legacy shape: a bare array instead of the versioned envelope.
	if trimmed[0] == '[' {
		var items []LineItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil
		}
		return items
	}

	var snap Snapshot
	if err := json.Unmarshal(trimmed, &snap); err != nil {
		return nil
	}
	if snap.Version != SnapshotVersion {
		return nil
	}
	return snap.Items
}
