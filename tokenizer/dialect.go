package tokenizer

// KeywordSet is the set of words lexed as KEYWORD tokens (all upper-case).
// T-SQL flavored union: reserved words plus the non-reserved words the
// formatting passes need to recognize (join modifiers, table hints, DDL
// sub-clauses). One flat set, no dialect switching.
var KeywordSet = map[string]bool{
	// Statements
	"SELECT": true, "INSERT": true, "UPDATE": true, "DELETE": true, "MERGE": true,
	"CREATE": true, "ALTER": true, "DROP": true, "TRUNCATE": true, "EXEC": true,
	"EXECUTE": true, "DECLARE": true, "USE": true,

	// Clauses
	"FROM": true, "WHERE": true, "GROUP": true, "HAVING": true, "ORDER": true,
	"BY": true, "INTO": true, "VALUES": true, "SET": true, "OUTPUT": true,
	"TOP": true, "PERCENT": true, "TIES": true, "WITH": true, "OPTION": true,
	"LIMIT": true, "OFFSET": true, "FETCH": true, "NEXT": true, "ROWS": true,
	"ONLY": true, "FIRST": true,

	// Joins
	"JOIN": true, "INNER": true, "OUTER": true, "LEFT": true, "RIGHT": true,
	"FULL": true, "CROSS": true, "APPLY": true, "ON": true, "USING": true,

	// Set operations
	"UNION": true, "EXCEPT": true, "INTERSECT": true, "ALL": true, "DISTINCT": true,

	// Expressions
	"AS": true, "AND": true, "OR": true, "NOT": true, "IN": true, "EXISTS": true,
	"BETWEEN": true, "LIKE": true, "IS": true, "NULL": true, "CASE": true,
	"WHEN": true, "THEN": true, "ELSE": true, "END": true, "ASC": true,
	"DESC": true, "OVER": true, "PARTITION": true, "RANGE": true,
	"UNBOUNDED": true, "PRECEDING": true, "FOLLOWING": true, "CURRENT": true,
	"ROW": true, "PIVOT": true, "UNPIVOT": true, "COLLATE": true, "ESCAPE": true,

	// MERGE
	"MATCHED": true, "SOURCE": true, "TARGET": true,

	// DDL
	"TABLE": true, "VIEW": true, "INDEX": true, "CLUSTERED": true,
	"NONCLUSTERED": true, "INCLUDE": true, "PROCEDURE": true, "PROC": true,
	"FUNCTION": true, "TRIGGER": true, "RETURNS": true, "RETURN": true,
	"BEGIN": true, "COLUMN": true, "ADD": true, "CONSTRAINT": true,
	"PRIMARY": true, "FOREIGN": true, "KEY": true, "REFERENCES": true,
	"UNIQUE": true, "CHECK": true, "DEFAULT": true, "IDENTITY": true,
	"CASCADE": true, "DATABASE": true, "SCHEMA": true, "SEQUENCE": true,

	// Transactions
	"TRANSACTION": true, "TRAN": true, "COMMIT": true, "ROLLBACK": true,
	"SAVE": true, "IF": true, "WHILE": true, "GOTO": true,
	"WAITFOR": true, "THROW": true, "TRY": true, "CATCH": true, "RAISERROR": true,

	// Hints and locking
	"NOLOCK": true, "HOLDLOCK": true, "READPAST": true, "ROWLOCK": true,
	"TABLOCK": true, "TABLOCKX": true, "UPDLOCK": true, "XLOCK": true,
	"FORCESEEK": true, "READCOMMITTED": true, "READUNCOMMITTED": true,
	"REPEATABLEREAD": true, "SERIALIZABLE": true, "SNAPSHOT": true,
	"NOEXPAND": true,
}

// DatatypeSet is the set of type-name keywords. A datatype immediately
// followed by an opening paren is a size/precision spec, not a keyword-
// introduced paren group, which changes the spacing decision.
var DatatypeSet = map[string]bool{
	"BIGINT": true, "INT": true, "INTEGER": true, "SMALLINT": true, "TINYINT": true,
	"BIT": true, "DECIMAL": true, "NUMERIC": true, "MONEY": true, "SMALLMONEY": true,
	"FLOAT": true, "REAL": true, "DATE": true, "TIME": true, "DATETIME": true,
	"DATETIME2": true, "SMALLDATETIME": true, "DATETIMEOFFSET": true,
	"TIMESTAMP": true, "CHAR": true, "VARCHAR": true, "TEXT": true, "NCHAR": true,
	"NVARCHAR": true, "NTEXT": true, "BINARY": true, "VARBINARY": true,
	"IMAGE": true, "UNIQUEIDENTIFIER": true, "XML": true, "SQL_VARIANT": true,
	"CURSOR": true, "HIERARCHYID": true, "GEOGRAPHY": true, "GEOMETRY": true,
}

// ConstraintSet is the set of keywords that, when following a top-level comma
// inside a CREATE TABLE column list, mark a table-level constraint rather
// than a column definition.
var ConstraintSet = map[string]bool{
	"CONSTRAINT": true, "PRIMARY": true, "FOREIGN": true, "UNIQUE": true,
	"CHECK": true, "KEY": true, "INDEX": true,
}

// IsKeyword reports whether word (any case) is a recognized keyword.
func IsKeyword(word string) bool {
	return KeywordSet[toUpper(word)]
}

// IsDatatype reports whether word (any case) is a recognized type name.
func IsDatatype(word string) bool {
	return DatatypeSet[toUpper(word)]
}

// toUpper is an ASCII-only upper-casing; SQL words never need unicode folding.
func toUpper(word string) string {
	buf := []byte(word)
	changed := false

	for i, c := range buf {
		if 'a' <= c && c <= 'z' {
			buf[i] = c - ('a' - 'A')
			changed = true
		}
	}

	if !changed {
		return word
	}

	return string(buf)
}
