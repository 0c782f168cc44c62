package glot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinksSingleFile(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.py",
		"polyglot.eval(language=\"js\", string=\"console.log(1)\")\n"+
			"polyglot.eval(language=\"js\", path=\"lib.js\")\n")
	lib := writeFile(t, dir, "lib.js", "console.log(2);\n")

	result, err := Links(LinksOptions{File: main})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Links, 2)

	require.Equal(t, main, result.Links[0].File)
	require.Equal(t, Position{Row: 0, Column: 0}, result.Links[0].Pos)
	require.Equal(t, "python", result.Links[0].From)
	require.Equal(t, "javascript", result.Links[0].To)
	require.Empty(t, result.Links[0].Target)

	require.Equal(t, Position{Row: 1, Column: 0}, result.Links[1].Pos)
	require.Equal(t, lib, result.Links[1].Target)
}

func TestLinksScansDirectory(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", "polyglot.eval(language=\"js\", string=\"1\")\n")
	b := writeFile(t, dir, "sub/b.py", "polyglot.eval(language=\"c\", string=\"int x;\")\n")
	writeFile(t, dir, "plain.py", "print(1)\n")
	writeFile(t, dir, "readme.txt", "not scanned\n")
	writeFile(t, dir, "node_modules/skipped.py", "polyglot.eval(language=\"js\", string=\"1\")\n")

	result, err := Links(LinksOptions{Path: dir, Language: "python", Jobs: 4})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Links, 2)

	// Sorted by file path regardless of worker completion order.
	require.Equal(t, a, result.Links[0].File)
	require.Equal(t, "javascript", result.Links[0].To)
	require.Equal(t, b, result.Links[1].File)
	require.Equal(t, "c", result.Links[1].To)
}

func TestLinksSkipsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.py", "polyglot.eval(language=\"js\", string=\"1\")\n")

	result, err := Links(LinksOptions{Path: dir, Language: "python", MaxBytes: 8})
	require.NoError(t, err)
	require.Empty(t, result.Links)
}

func TestLinksRequiresLanguage(t *testing.T) {
	_, err := Links(LinksOptions{Path: t.TempDir()})
	require.Error(t, err)
	require.Contains(t, err.Error(), "language is required")
}

func TestLinksGuessesLanguageFromFile(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.js", "Polyglot.eval(\"python\", \"print(1)\");\n")

	result, err := Links(LinksOptions{File: main})
	require.NoError(t, err)
	require.Len(t, result.Links, 1)
	require.Equal(t, "javascript", result.Links[0].From)
	require.Equal(t, "python", result.Links[0].To)
}

func TestLinksCollectsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.py", "polyglot.eval(language=\"go\", string=\"1\")\n")

	result, err := Links(LinksOptions{File: main})
	require.NoError(t, err)
	require.Empty(t, result.Links)
	require.Len(t, result.Diagnostics, 1)
	require.Equal(t, main, result.Diagnostics[0].Path)
	require.Contains(t, result.Diagnostics[0].Message, "unknown language")
}

func TestBindingsAcrossBoundary(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.py",
		"polyglot.export_value(\"answer\", 42)\n"+
			"polyglot.eval(language=\"js\", string=\"Polyglot.import('answer')\")\n")

	result, err := Bindings(BindingsOptions{File: main})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Bindings, 2)

	// The guest binding comes from an in-memory tree, so it has no file and
	// sorts ahead of the host's.
	require.Empty(t, result.Bindings[0].File)
	require.Equal(t, "javascript", result.Bindings[0].Language)
	require.Equal(t, "import", result.Bindings[0].Kind)
	require.Equal(t, "answer", result.Bindings[0].Name)

	require.Equal(t, main, result.Bindings[1].File)
	require.Equal(t, "python", result.Bindings[1].Language)
	require.Equal(t, "export", result.Bindings[1].Kind)
	require.Equal(t, "answer", result.Bindings[1].Name)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	main := writeFile(t, dir, "main.py", "polyglot.eval(language=\"js\", string=\"1\")\n")

	result, err := Render(RenderOptions{File: main})
	require.NoError(t, err)
	require.Empty(t, result.Diagnostics)
	require.Contains(t, result.Text, "module\n")
	require.Contains(t, result.Text, "polyglot_eval_call\n")
	require.Contains(t, result.Text, "number \"1\"")
}

func TestRenderRequiresFile(t *testing.T) {
	_, err := Render(RenderOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file is required")
}
