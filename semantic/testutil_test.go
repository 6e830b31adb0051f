package semantic_test

import (
	"github.com/nql-lang/nqlsem/catalog"
	"github.com/nql-lang/nqlsem/datum"
)

// newCatalog builds the small fixed catalog used across the semantic
// package's tests: t(a:int, b:string), tlong(a:long), t1(x:int),
// t2(x:int, id:int), t1j(id:int), t2j(id:int), plus the count() and
// count(ANY) and sum(ANY) aggregates and the upper(STRING) scalar function.
func newCatalog() *catalog.MemCatalog {
	cat := catalog.NewMemCatalog()
	cat.AddTable(catalog.NewTableDesc("t",
		catalog.Column{TableID: "t", Name: "a", ValType: datum.Int},
		catalog.Column{TableID: "t", Name: "b", ValType: datum.String},
	))
	cat.AddTable(catalog.NewTableDesc("tlong",
		catalog.Column{TableID: "tlong", Name: "a", ValType: datum.Long},
	))
	cat.AddTable(catalog.NewTableDesc("t1",
		catalog.Column{TableID: "t1", Name: "x", ValType: datum.Int},
	))
	cat.AddTable(catalog.NewTableDesc("t2",
		catalog.Column{TableID: "t2", Name: "x", ValType: datum.Int},
		catalog.Column{TableID: "t2", Name: "id", ValType: datum.Int},
	))
	cat.AddTable(catalog.NewTableDesc("t1j",
		catalog.Column{TableID: "t1j", Name: "id", ValType: datum.Int},
	))
	cat.AddTable(catalog.NewTableDesc("t2j",
		catalog.Column{TableID: "t2j", Name: "id", ValType: datum.Int},
	))
	cat.AddFunction(&catalog.FunctionDesc{Name: "count", ParamTypes: nil, ReturnType: datum.Long, Type: catalog.Agg})
	cat.AddFunction(&catalog.FunctionDesc{Name: "count", ParamTypes: []datum.Type{datum.Any}, ReturnType: datum.Long, Type: catalog.Agg})
	cat.AddFunction(&catalog.FunctionDesc{Name: "sum", ParamTypes: []datum.Type{datum.Any}, ReturnType: datum.Long, Type: catalog.Agg})
	cat.AddFunction(&catalog.FunctionDesc{Name: "upper", ParamTypes: []datum.Type{datum.String}, ReturnType: datum.String, Type: catalog.General})
	return cat
}
