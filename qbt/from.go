package qbt

import "github.com/nql-lang/nqlsem/catalog"

// FromTable is one table reference in a FROM clause (spec §3).
type FromTable struct {
	Desc  *catalog.TableDesc
	Alias string
}

// EffectiveName is the alias if present, else the table's catalog ID (spec
// §3: "effective_name = alias ?? desc.id").
func (f *FromTable) EffectiveName() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Desc.ID
}

func (f *FromTable) HasAlias() bool { return f.Alias != "" }
