package ast

import (
	"encoding/json"
	"fmt"
)

// kindByName is the reverse of kindNames, built once so JSON-encoded ASTs
// (the wire format a real parser collaborator would hand the analyzer, per
// spec §6) can use readable kind names like "SELECT" instead of opaque
// integers.
var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// MarshalJSON renders a Kind as its grammar-token name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts either the grammar-token name (the normal case for
// hand-written or tool-generated fixtures, and what MarshalJSON emits) or a
// raw integer (from a parser that emits the enum directly).
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		kind, ok := kindByName[name]
		if !ok {
			return fmt.Errorf("ast: unknown node kind %q", name)
		}
		*k = kind
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("ast: node kind must be a string or integer: %w", err)
	}
	*k = Kind(n)
	return nil
}
