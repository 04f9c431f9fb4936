package codec

import gojson "github.com/goccy/go-json"

// GoJSON encodes snapshots with github.com/goccy/go-json. It is the Default
// codec and reads everything JSON writes.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name is recorded in snapshot envelopes.
func (GoJSON) Name() string { return "go-json" }
