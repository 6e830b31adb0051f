package catalog

import (
	"fmt"
	"sync"

	"github.com/nql-lang/nqlsem/datum"
)

// MemCatalog is a simple in-memory Catalog, used by the demo CLI and by
// tests standing in for a real catalog service. It is grounded on the
// teacher's compiler/data.Source, which resolves pool/table names against an
// in-process lake handle rather than a network round trip.
type MemCatalog struct {
	mu        sync.RWMutex
	tables    map[string]*TableDesc
	functions map[string]*FunctionDesc // keyed by Name + parameter types (funcKey)
}

func NewMemCatalog() *MemCatalog {
	return &MemCatalog{
		tables:    make(map[string]*TableDesc),
		functions: make(map[string]*FunctionDesc),
	}
}

// AddTable registers a table, overwriting any previous definition of the
// same name.
func (c *MemCatalog) AddTable(desc *TableDesc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[desc.ID] = desc
}

// AddFunction registers a function signature.
func (c *MemCatalog) AddFunction(desc *FunctionDesc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.functions[funcKey(desc.Name, desc.ParamTypes)] = desc
}

func funcKey(name string, paramTypes []datum.Type) string {
	key := name
	for _, t := range paramTypes {
		key += "|" + t.String()
	}
	return key
}

func (c *MemCatalog) GetTable(name string) (*TableDesc, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchTable, name)
	}
	return desc, nil
}

// ContainsFunction applies the catalog's resolution rule: an exact
// parameter-type match first, falling back to ANY-typed parameters matching
// any argument, as spec §6 ("ANY acts as a wildcard parameter type").
func (c *MemCatalog) ContainsFunction(signature string, paramTypes []datum.Type) bool {
	_, err := c.resolve(signature, paramTypes)
	return err == nil
}

func (c *MemCatalog) GetFunction(signature string, paramTypes []datum.Type) (*FunctionDesc, error) {
	return c.resolve(signature, paramTypes)
}

func (c *MemCatalog) resolve(signature string, paramTypes []datum.Type) (*FunctionDesc, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if desc, ok := c.functions[funcKey(signature, paramTypes)]; ok {
		return desc, nil
	}
	for _, desc := range c.functions {
		if desc.Name != signature || len(desc.ParamTypes) != len(paramTypes) {
			continue
		}
		if matchesWithAny(desc.ParamTypes, paramTypes) {
			return desc, nil
		}
	}
	return nil, fmt.Errorf("%s: no matching function signature", CanonicalName(signature, paramTypes))
}

func matchesWithAny(declared, given []datum.Type) bool {
	for i, d := range declared {
		if d == datum.Any {
			continue
		}
		if d != given[i] {
			return false
		}
	}
	return true
}

func (c *MemCatalog) TableNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	return names
}

func (c *MemCatalog) FunctionNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{})
	var names []string
	for _, desc := range c.functions {
		if _, ok := seen[desc.Name]; ok {
			continue
		}
		seen[desc.Name] = struct{}{}
		names = append(names, desc.Name)
	}
	return names
}
