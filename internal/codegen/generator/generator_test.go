package generator

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxy/goos/internal/codegen/generator/java"
	"github.com/jxy/goos/internal/codegen/scanner"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGenAll(t *testing.T) {
	out := filepath.Join(t.TempDir(), "output")
	g, err := New("testdata/schema", out, Config{}, testLogger())
	require.NoError(t, err)

	rep, err := g.GenAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"broken", "product", "user"}, rep.Tables)
	assert.Equal(t, []string{
		filepath.Join(out, "broken", "BrokenController.java"),
		filepath.Join(out, "product", "ProductVO.java"),
		filepath.Join(out, "product", "ProductController.java"),
		filepath.Join(out, "user", "UserVO.java"),
		filepath.Join(out, "user", "UserController.java"),
		filepath.Join(out, "user", "UserQueryVO.java"),
		filepath.Join(out, "LoginController.java"),
		filepath.Join(out, "CommonResult.java"),
		filepath.Join(out, "UploadController.java"),
	}, rep.Written)
	assert.Equal(t, 9, rep.FieldCount)

	require.Len(t, rep.FieldErrs, 1)
	assert.Equal(t, "blob", rep.FieldErrs[0].Key)
	assert.ErrorIs(t, rep.FieldErrs[0], java.ErrUnknownDataType)

	require.Len(t, rep.FileErrs, 1)
	assert.Contains(t, rep.FileErrs[0].Error(), "broken.querySchema.js")
	assert.True(t, rep.Failed())

	for _, path := range rep.Written {
		assert.FileExists(t, path)
	}
	assert.NoFileExists(t, filepath.Join(out, "broken", "BrokenQueryVO.java"))

	vo, err := os.ReadFile(filepath.Join(out, "product", "ProductVO.java"))
	require.NoError(t, err)
	assert.Contains(t, string(vo), "private String sku;\nprivate Double price;\nprivate List<String> photos;\n")
}

func TestGenAllTwiceOverwrites(t *testing.T) {
	out := t.TempDir()
	for i := 0; i < 2; i++ {
		g, err := New("testdata/schema", out, Config{}, testLogger())
		require.NoError(t, err)
		rep, err := g.GenAll()
		require.NoError(t, err)
		assert.Len(t, rep.Written, 9)
	}
}

func TestGenAllMissingInput(t *testing.T) {
	dir := t.TempDir()
	g, err := New(filepath.Join(dir, "missing"), filepath.Join(dir, "out"), Config{}, testLogger())
	require.NoError(t, err)

	_, err = g.GenAll()
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestGenAllEmptyInput(t *testing.T) {
	out := t.TempDir()
	g, err := New(t.TempDir(), out, Config{}, testLogger())
	require.NoError(t, err)

	rep, err := g.GenAll()
	require.NoError(t, err)
	assert.Empty(t, rep.Tables)
	assert.Len(t, rep.Written, 3, "boilerplate is written even without schemas")
	assert.False(t, rep.Failed())
}

func TestGenerateFileControllerOnce(t *testing.T) {
	out := t.TempDir()
	g, err := New("testdata/schema", out, Config{}, testLogger())
	require.NoError(t, err)

	file := scanner.SchemaFile{
		Path:  filepath.Join("testdata", "schema", "product.dataSchema.js"),
		Table: "product",
		Kind:  scanner.KindData,
	}

	rep := g.GenerateFile(file)
	assert.Equal(t, []string{"product"}, rep.Tables)
	assert.Len(t, rep.Written, 2)

	rep = g.GenerateFile(file)
	assert.Empty(t, rep.Tables)
	assert.Equal(t, []string{filepath.Join(out, "product", "ProductVO.java")}, rep.Written)
}

func TestNewTemplateOverride(t *testing.T) {
	_, err := New("testdata/schema", t.TempDir(), Config{Templates: filepath.Join(t.TempDir(), "missing")}, testLogger())
	assert.Error(t, err)

	tmpl := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpl, java.ControllerTemplate), []byte("// {upCamelName}\n"), 0o644))
	out := t.TempDir()
	g, err := New("testdata/schema", out, Config{Templates: tmpl}, testLogger())
	require.NoError(t, err)

	_, err = g.GenAll()
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(out, "user", "UserController.java"))
	require.NoError(t, err)
	assert.Equal(t, "// User\n", string(data))
}

func TestGenAllGroupsByTable(t *testing.T) {
	in := t.TempDir()
	schema := []byte("module.exports = [\n  {\n    key: 'id',\n    dataType: 'int',\n  },\n];\n")
	// a.e.dataSchema.js sorts between the two files of table a
	for _, name := range []string{"a.dataSchema.js", "a.e.dataSchema.js", "a.querySchema.js"} {
		require.NoError(t, os.WriteFile(filepath.Join(in, name), schema, 0o644))
	}

	out := t.TempDir()
	g, err := New(in, out, Config{}, testLogger())
	require.NoError(t, err)
	rep, err := g.GenAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a.e"}, rep.Tables)
	assert.Equal(t, []string{
		filepath.Join(out, "a", "AVO.java"),
		filepath.Join(out, "a", "AController.java"),
		filepath.Join(out, "a", "AQueryVO.java"),
		filepath.Join(out, "a.e", "A.eVO.java"),
		filepath.Join(out, "a.e", "A.eController.java"),
	}, rep.Written[:5])
}
