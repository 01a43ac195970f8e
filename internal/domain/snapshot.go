package domain

import "encoding/json"

// Snapshot is the bag of versioned field values carried by a content
// version. Persisted as a JSON column; values round-trip through
// encoding/json, so numeric values decode as float64.
type Snapshot map[string]any

// Encode marshals the snapshot for storage.
func (s Snapshot) Encode() (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeSnapshot parses a stored snapshot. An empty value decodes to an
// empty snapshot.
func DecodeSnapshot(raw string) (Snapshot, error) {
	if raw == "" {
		return Snapshot{}, nil
	}
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetString returns a string value for key.
func (s Snapshot) GetString(key string) (string, bool) {
	v, ok := s[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetIDList returns an id list for key (e.g. category_ids). The second
// return is false when the snapshot does not carry the key at all, so
// callers can distinguish "absent" from "present but empty".
func (s Snapshot) GetIDList(key string) ([]uint64, bool) {
	v, ok := s[key]
	if !ok || v == nil {
		return nil, false
	}
	switch list := v.(type) {
	case []uint64:
		return list, true
	case []any:
		ids := make([]uint64, 0, len(list))
		for _, item := range list {
			if f, ok := item.(float64); ok {
				ids = append(ids, uint64(f))
			}
		}
		return ids, true
	default:
		return nil, false
	}
}
