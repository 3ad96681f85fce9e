package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

const formatted = `SELECT a
    , b
FROM t
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestFormatWriteInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "query.sql", "select a,b from t")

	cmd := &FormatCmd{Input: path, Write: true}
	assert.NoError(t, cmd.Run(&Context{}))

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, formatted, string(content))
}

func TestFormatToOutputFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "query.sql", "select a,b from t")
	out := filepath.Join(dir, "out.sql")

	cmd := &FormatCmd{Input: path, Output: out}
	assert.NoError(t, cmd.Run(&Context{}))

	// the input is untouched
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "select a,b from t", string(content))

	content, err = os.ReadFile(out)
	assert.NoError(t, err)
	assert.Equal(t, formatted, string(content))
}

func TestFormatCheckMode(t *testing.T) {
	dir := t.TempDir()

	unformatted := writeFile(t, dir, "bad.sql", "select a,b from t")
	cmd := &FormatCmd{Input: unformatted, Check: true}
	assert.IsError(t, cmd.Run(&Context{}), ErrFileNotFormatted)

	clean := writeFile(t, dir, "good.sql", formatted)
	cmd = &FormatCmd{Input: clean, Check: true}
	assert.NoError(t, cmd.Run(&Context{}))
}

func TestFormatDirectory(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.sql", "select a,b from t")
	second := writeFile(t, dir, "b.sql", "select a,b from t")
	other := writeFile(t, dir, "notes.txt", "not sql")

	cmd := &FormatCmd{Input: dir, Write: true}
	assert.NoError(t, cmd.Run(&Context{Quiet: true}))

	for _, path := range []string{first, second} {
		content, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, formatted, string(content))
	}

	content, err := os.ReadFile(other)
	assert.NoError(t, err)
	assert.Equal(t, "not sql", string(content))
}

func TestFormatDirectoryCheckMode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.sql", "select a,b from t")
	writeFile(t, dir, "good.sql", formatted)

	cmd := &FormatCmd{Input: dir, Check: true}
	assert.IsError(t, cmd.Run(&Context{}), ErrFileNotFormatted)
}

func TestEmptyFileIsIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "empty.sql", "")

	cmd := &FormatCmd{Input: path, Write: true}
	assert.NoError(t, cmd.Run(&Context{}))

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "", string(content))
}

func TestIsSQLFile(t *testing.T) {
	assert.True(t, isSQLFile("query.sql"))
	assert.True(t, isSQLFile("QUERY.SQL"))
	assert.False(t, isSQLFile("query.txt"))
	assert.False(t, isSQLFile("query"))
}
