package catalog

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nql-lang/nqlsem/datum"
)

// CachedCatalog wraps a Catalog with a bounded LRU over function-signature
// resolution (SPEC_FULL.md §4.18), mirroring the teacher's own use of
// golang-lru/v2 for its kernel-level expression caches. GetTable is left
// unwrapped: table lookups are already O(1) map reads in every
// implementation seen in this module, and caching them would just shadow
// catalog mutations (e.g. CREATE TABLE during a session) without a
// measurable benefit.
type CachedCatalog struct {
	inner Catalog
	cache *lru.Cache[string, *FunctionDesc]
}

// NewCachedCatalog wraps inner with an LRU of the given size.
func NewCachedCatalog(inner Catalog, size int) (*CachedCatalog, error) {
	cache, err := lru.New[string, *FunctionDesc](size)
	if err != nil {
		return nil, err
	}
	return &CachedCatalog{inner: inner, cache: cache}, nil
}

func (c *CachedCatalog) GetTable(name string) (*TableDesc, error) {
	return c.inner.GetTable(name)
}

func (c *CachedCatalog) ContainsFunction(signature string, paramTypes []datum.Type) bool {
	if _, ok := c.cache.Get(funcKey(signature, paramTypes)); ok {
		return true
	}
	return c.inner.ContainsFunction(signature, paramTypes)
}

func (c *CachedCatalog) GetFunction(signature string, paramTypes []datum.Type) (*FunctionDesc, error) {
	key := funcKey(signature, paramTypes)
	if desc, ok := c.cache.Get(key); ok {
		return desc, nil
	}
	desc, err := c.inner.GetFunction(signature, paramTypes)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, desc)
	return desc, nil
}

func (c *CachedCatalog) TableNames() []string    { return c.inner.TableNames() }
func (c *CachedCatalog) FunctionNames() []string { return c.inner.FunctionNames() }
