package fmtcommon

// Clause identifies the syntactic region a token belongs to. Clauses are
// mutually exclusive per statement and only change at a keyword boundary or
// statement end.
type Clause int

const (
	ClauseNone Clause = iota
	ClauseSelect
	ClauseFrom
	ClauseWhere
	ClauseJoin
	ClauseOn
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseSet
	ClauseValues
	ClauseInsert
	ClauseUpdate
	ClauseDelete
	ClauseMerge
	ClauseUsing
	ClauseMergeWhen
	ClauseOutput
	ClauseSetOp // UNION / EXCEPT / INTERSECT
	ClauseWith  // CTE definition list
	ClauseCreateTable
	ClauseCreateIndex
	ClauseCreateProc
	ClauseAlterTable
	ClauseDeclare
)

var clauseNames = map[Clause]string{
	ClauseNone:        "none",
	ClauseSelect:      "select",
	ClauseFrom:        "from",
	ClauseWhere:       "where",
	ClauseJoin:        "join",
	ClauseOn:          "on",
	ClauseGroupBy:     "group_by",
	ClauseHaving:      "having",
	ClauseOrderBy:     "order_by",
	ClauseSet:         "set",
	ClauseValues:      "values",
	ClauseInsert:      "insert",
	ClauseUpdate:      "update",
	ClauseDelete:      "delete",
	ClauseMerge:       "merge",
	ClauseUsing:       "using",
	ClauseMergeWhen:   "merge_when",
	ClauseOutput:      "output",
	ClauseSetOp:       "set_op",
	ClauseWith:        "with",
	ClauseCreateTable: "create_table",
	ClauseCreateIndex: "create_index",
	ClauseCreateProc:  "create_proc",
	ClauseAlterTable:  "alter_table",
	ClauseDeclare:     "declare",
}

// String returns the string representation of Clause
func (c Clause) String() string {
	if name, ok := clauseNames[c]; ok {
		return name
	}

	return "unknown"
}

// ListContext identifies the innermost comma-separated list a token belongs
// to. It drives the per-context stacking decision in the structure resolver.
type ListContext int

const (
	ListNone ListContext = iota
	ListSelect
	ListFromTables
	ListGroupBy
	ListOrderBy
	ListInsertColumns
	ListValuesRow  // items inside one VALUES (...) row
	ListValuesRows // separators between VALUES rows
	ListCTEs       // separators between CTEs in a multi-CTE WITH
	ListCTEColumns
	ListFunctionArgs
	ListIndexColumns
	ListIncludeColumns
	ListProcParams
	ListUpdateSet
	ListCreateTableColumns
	ListAlterOps
	ListTableHint
	ListOutput
	ListWhereConditions // top-level AND/OR chain of a WHERE or HAVING clause
	ListOnConditions    // top-level AND/OR chain of an ON clause
	ListExpression      // parenthesized group with no stacking of its own
)

var listContextNames = map[ListContext]string{
	ListNone:               "none",
	ListSelect:             "select_list",
	ListFromTables:         "from_tables",
	ListGroupBy:            "group_by",
	ListOrderBy:            "order_by",
	ListInsertColumns:      "insert_columns",
	ListValuesRow:          "values_row",
	ListValuesRows:         "values_rows",
	ListCTEs:               "ctes",
	ListCTEColumns:         "cte_columns",
	ListFunctionArgs:       "function_args",
	ListIndexColumns:       "index_columns",
	ListIncludeColumns:     "include_columns",
	ListProcParams:         "proc_params",
	ListUpdateSet:          "update_set",
	ListCreateTableColumns: "create_table_columns",
	ListAlterOps:           "alter_operations",
	ListTableHint:          "table_hint",
	ListOutput:             "output",
	ListWhereConditions:    "where_conditions",
	ListOnConditions:       "on_conditions",
	ListExpression:         "expression",
}

// String returns the string representation of ListContext
func (l ListContext) String() string {
	if name, ok := listContextNames[l]; ok {
		return name
	}

	return "unknown"
}
