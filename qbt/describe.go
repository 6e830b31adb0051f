package qbt

// Describe renders any ParseTree (or EvalNode, for recursive use) as a
// JSON-friendly map, since EvalNode/ParseTree are closed interfaces rather
// than JSON-taggable structs. This is purely a CLI/debugging convenience
// (SPEC_FULL.md §6's cmd/nqlctl) — the analyzer's real output contract is
// the Go object model itself, not any wire format.
func Describe(tree ParseTree) map[string]any {
	if tree == nil {
		return nil
	}
	switch t := tree.(type) {
	case *QueryBlock:
		return describeBlock(t)
	case *SetStmt:
		return map[string]any{
			"kind":     t.Kind.String(),
			"distinct": t.Distinct,
			"left":     Describe(t.Left),
			"right":    Describe(t.Right),
		}
	case *CreateTableStmt:
		m := map[string]any{"kind": "CREATE_TABLE", "name": t.Name}
		if t.IsCTAS() {
			m["select"] = describeBlock(t.Select)
		} else {
			cols := make([]map[string]any, len(t.Columns))
			for i, c := range t.Columns {
				cols[i] = map[string]any{"name": c.Name, "type": c.ValType.String()}
			}
			m["columns"] = cols
			m["store_kind"] = t.StoreKind
			m["path"] = t.Path
			m["options"] = t.Options
		}
		return m
	case *CreateIndexStmt:
		specs := make([]map[string]any, len(t.SortSpecs))
		for i, s := range t.SortSpecs {
			specs[i] = describeSortSpec(s)
		}
		return map[string]any{
			"kind":       "CREATE_INDEX",
			"name":       t.Name,
			"unique":     t.Unique,
			"table":      t.Table,
			"method":     t.Method.String(),
			"params":     t.Params,
			"sort_specs": specs,
		}
	default:
		return map[string]any{"kind": "UNKNOWN"}
	}
}

func describeBlock(b *QueryBlock) map[string]any {
	m := map[string]any{
		"kind":           "QUERY_BLOCK",
		"id":             b.ID.String(),
		"distinct":       b.Distinct,
		"project_all":    b.ProjectAll,
		"is_aggregation": b.IsAggregation,
	}
	if len(b.Targets) > 0 {
		targets := make([]map[string]any, len(b.Targets))
		for i, t := range b.Targets {
			targets[i] = map[string]any{
				"index": t.Index,
				"alias": t.Alias,
				"expr":  DescribeEval(t.Expr),
			}
		}
		m["targets"] = targets
	}
	if len(b.FromTables) > 0 {
		tables := make([]map[string]any, len(b.FromTables))
		for i, ft := range b.FromTables {
			tables[i] = map[string]any{"table": ft.Desc.ID, "alias": ft.Alias, "effective_name": ft.EffectiveName()}
		}
		m["from_tables"] = tables
	}
	if b.JoinClause != nil {
		m["join_clause"] = describeJoin(b.JoinClause)
	}
	if b.Where != nil {
		m["where"] = DescribeEval(b.Where)
	}
	if b.GroupBy != nil {
		groups := make([]map[string]any, len(b.GroupBy.Groups))
		for i, g := range b.GroupBy.Groups {
			cols := make([]string, len(g.Columns))
			for j, c := range g.Columns {
				cols[j] = c.Qualified()
			}
			groups[i] = map[string]any{"kind": g.Kind.String(), "columns": cols}
		}
		m["group_by"] = map[string]any{"empty_grouping_set": b.GroupBy.EmptyGroupingSet, "groups": groups}
	}
	if b.Having != nil {
		m["having"] = DescribeEval(b.Having)
	}
	if len(b.SortKeys) > 0 {
		specs := make([]map[string]any, len(b.SortKeys))
		for i, s := range b.SortKeys {
			specs[i] = describeSortSpec(s)
		}
		m["sort_keys"] = specs
	}
	return m
}

func describeJoin(j *JoinClause) map[string]any {
	m := map[string]any{
		"kind": j.Kind.String(),
		"left": map[string]any{"table": j.Left.Desc.ID, "alias": j.Left.Alias},
	}
	switch r := j.Right.(type) {
	case *FromTable:
		m["right"] = map[string]any{"table": r.Desc.ID, "alias": r.Alias}
	case *JoinClause:
		m["right"] = describeJoin(r)
	}
	if j.OnExpr != nil {
		m["on"] = DescribeEval(j.OnExpr)
	}
	if len(j.UsingCols) > 0 {
		cols := make([]string, len(j.UsingCols))
		for i, c := range j.UsingCols {
			cols[i] = c.Qualified()
		}
		m["using"] = cols
	}
	return m
}

func describeSortSpec(s SortSpec) map[string]any {
	return map[string]any{
		"column":      s.Column.Qualified(),
		"descending":  s.Descending,
		"nulls_first": s.NullsFirst,
	}
}

// DescribeEval renders an EvalNode as a JSON-friendly map, exported so
// callers that only have an expression (e.g. a target) can render it
// without constructing a containing ParseTree.
func DescribeEval(e EvalNode) map[string]any {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *Const:
		return map[string]any{"kind": "CONST", "type": v.Value.Type().String(), "value": v.Value.Value()}
	case *Field:
		return map[string]any{"kind": "FIELD", "column": v.Col.Qualified(), "type": v.Col.ValType.String()}
	case *Not:
		return map[string]any{"kind": "NOT", "expr": DescribeEval(v.Expr)}
	case *Binary:
		return map[string]any{"kind": "BINARY", "op": v.Op.String(), "lhs": DescribeEval(v.LHS), "rhs": DescribeEval(v.RHS)}
	case *Like:
		return map[string]any{"kind": "LIKE", "not": v.Not, "field": DescribeEval(v.Field), "pattern": DescribeEval(v.Pattern)}
	case *FuncCall:
		args := make([]map[string]any, len(v.Args))
		for i, arg := range v.Args {
			args[i] = DescribeEval(arg)
		}
		return map[string]any{"kind": "FUNC_CALL", "name": v.Desc.Name, "args": args}
	case *AggFuncCall:
		args := make([]map[string]any, len(v.Args))
		for i, arg := range v.Args {
			args[i] = DescribeEval(arg)
		}
		return map[string]any{"kind": "AGG_FUNC_CALL", "name": v.Desc.Name, "args": args}
	case *CaseWhen:
		branches := make([]map[string]any, len(v.Branches))
		for i, br := range v.Branches {
			branches[i] = map[string]any{"cond": DescribeEval(br.Cond), "result": DescribeEval(br.Result)}
		}
		m := map[string]any{"kind": "CASE", "branches": branches}
		if v.Else != nil {
			m["else"] = DescribeEval(v.Else)
		}
		return m
	default:
		return map[string]any{"kind": "UNKNOWN"}
	}
}
