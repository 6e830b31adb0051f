package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nql-lang/nqlsem/datum"
)

// Fixture is the on-disk YAML shape for a demo/test catalog, used by
// cmd/nqlctl and by test setup that wants a catalog bigger than a few
// hand-built tables. Grounded on the teacher's own YAML-configured lake and
// service fixtures.
type Fixture struct {
	Tables    []FixtureTable    `yaml:"tables"`
	Functions []FixtureFunction `yaml:"functions"`
}

type FixtureTable struct {
	Name    string           `yaml:"name"`
	Columns []FixtureColumn  `yaml:"columns"`
}

type FixtureColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type FixtureFunction struct {
	Name       string   `yaml:"name"`
	ParamTypes []string `yaml:"param_types"`
	ReturnType string   `yaml:"return_type"`
	Agg        bool     `yaml:"agg"`
}

var scalarNames = map[string]datum.Type{
	"bool":   datum.Bool,
	"byte":   datum.Byte,
	"short":  datum.Short,
	"int":    datum.Int,
	"long":   datum.Long,
	"float":  datum.Float,
	"double": datum.Double,
	"char":   datum.Char,
	"string": datum.String,
	"text":   datum.String,
	"bytes":  datum.Bytes,
	"ipv4":   datum.IPv4,
	"any":    datum.Any,
}

// ParseScalarType maps a fixture type token to a datum.Type, used by
// fixture loading. CREATE TABLE column types are mapped separately, from
// AST kinds, in the semantic package.
func ParseScalarType(token string) (datum.Type, bool) {
	t, ok := scalarNames[token]
	return t, ok
}

// LoadFixture parses a YAML fixture into a ready-to-use MemCatalog.
func LoadFixture(data []byte) (*MemCatalog, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing catalog fixture: %w", err)
	}
	cat := NewMemCatalog()
	for _, t := range fx.Tables {
		var cols []Column
		for _, c := range t.Columns {
			typ, ok := ParseScalarType(c.Type)
			if !ok {
				return nil, fmt.Errorf("table %q: unknown column type %q", t.Name, c.Type)
			}
			cols = append(cols, Column{TableID: t.Name, Name: c.Name, ValType: typ})
		}
		cat.AddTable(NewTableDesc(t.Name, cols...))
	}
	for _, f := range fx.Functions {
		var params []datum.Type
		for _, p := range f.ParamTypes {
			typ, ok := ParseScalarType(p)
			if !ok {
				return nil, fmt.Errorf("function %q: unknown param type %q", f.Name, p)
			}
			params = append(params, typ)
		}
		ret, ok := ParseScalarType(f.ReturnType)
		if !ok {
			return nil, fmt.Errorf("function %q: unknown return type %q", f.Name, f.ReturnType)
		}
		ftype := General
		if f.Agg {
			ftype = Agg
		}
		cat.AddFunction(&FunctionDesc{Name: f.Name, ParamTypes: params, ReturnType: ret, Type: ftype})
	}
	return cat, nil
}

// LoadFixtureFile reads and parses a YAML fixture file.
func LoadFixtureFile(path string) (*MemCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog fixture: %w", err)
	}
	return LoadFixture(data)
}
