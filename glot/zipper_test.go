package glot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, source string, lang Language) *Tree {
	t.Helper()
	tree, err := Parse([]byte(source), lang)
	require.NoError(t, err)
	return tree
}

func TestZipperSyntheticKinds(t *testing.T) {
	source := "polyglot.eval(language=\"js\", string=\"1\")\n" +
		"polyglot.import_value(\"foo\")\n" +
		"polyglot.export_value(\"bar\", val)\n"
	tree := mustParse(t, source, Python)

	eval := findByKind(tree.Root(), "polyglot_eval_call")
	require.NotNil(t, eval)
	require.True(t, eval.IsEvalCall())
	require.False(t, eval.IsImportCall())

	imp := findByKind(tree.Root(), "polyglot_import_call")
	require.NotNil(t, imp)
	require.True(t, imp.IsImportCall())

	exp := findByKind(tree.Root(), "polyglot_export_call")
	require.NotNil(t, exp)
	require.True(t, exp.IsExportCall())
}

func TestZipperSiblingNeverCrosses(t *testing.T) {
	source := "polyglot.eval(language=\"js\", string=\"1\")\nprint(2)\n"
	tree := mustParse(t, source, Python)

	// The statement holding the evaluate call and the plain statement after
	// it are siblings in the host tree; moving between them stays in python.
	z := tree.Root()
	require.True(t, z.GotoFirstChild())
	require.Equal(t, Python, z.Language())
	require.True(t, z.GotoNextSibling())
	require.Equal(t, Python, z.Language())
	require.Equal(t, "print(2)", z.Code())

	back := z.PrevSibling()
	require.NotNil(t, back)
	require.Equal(t, Python, back.Language())
	require.Nil(t, back.PrevSibling())
	require.NotNil(t, back.NextSibling())

	// Once inside the guest tree, its root has no siblings to escape to.
	eval := findByKind(tree.Root(), "polyglot_eval_call")
	require.NotNil(t, eval)
	require.True(t, eval.GotoFirstChild())
	require.Equal(t, JavaScript, eval.Language())
	require.False(t, eval.GotoNextSibling())
	require.Equal(t, JavaScript, eval.Language())
}

func TestZipperChildRedirectsOnEvalCall(t *testing.T) {
	source := "polyglot.eval(language=\"js\", string=\"console.log(1)\")\n"
	tree := mustParse(t, source, Python)

	eval := findByKind(tree.Root(), "polyglot_eval_call")
	require.NotNil(t, eval)

	// Call sites are opaque: every child index leads to the subtree root.
	for _, i := range []int{0, 1, 5} {
		child := eval.Child(i)
		require.NotNil(t, child)
		require.Equal(t, JavaScript, child.Language())
		require.Equal(t, "program", child.Kind())
	}
}

func TestZipperChildOnUnresolvedEvalCall(t *testing.T) {
	source := "polyglot.eval(language=\"go\", string=\"1\")\n"
	tree := mustParse(t, source, Python)
	require.Len(t, tree.Diagnostics(), 1)

	eval := findByKind(tree.Root(), "polyglot_eval_call")
	require.NotNil(t, eval)
	require.Nil(t, eval.Child(0))
	require.False(t, eval.Clone().GotoFirstChild())
}

func TestZipperBindingName(t *testing.T) {
	tests := []struct {
		name   string
		lang   Language
		source string
		kind   string
		want   string
	}{
		{
			name:   "python_import",
			lang:   Python,
			source: "polyglot.import_value(\"foo\")\n",
			kind:   "polyglot_import_call",
			want:   "foo",
		},
		{
			name:   "python_export",
			lang:   Python,
			source: "polyglot.export_value(\"bar\", val)\n",
			kind:   "polyglot_export_call",
			want:   "bar",
		},
		{
			name:   "javascript_import",
			lang:   JavaScript,
			source: "Polyglot.import(\"foo\");\n",
			kind:   "polyglot_import_call",
			want:   "foo",
		},
		{
			name:   "java_export",
			lang:   Java,
			source: "class A { void f(Value b) { b.putMember(\"bar\", 1); } }\n",
			kind:   "polyglot_export_call",
			want:   "bar",
		},
		{
			name:   "c_import",
			lang:   C,
			source: "void f() { polyglot_import(\"foo\"); }\n",
			kind:   "polyglot_import_call",
			want:   "foo",
		},
		{
			name:   "runtime_computed_name",
			lang:   Python,
			source: "polyglot.import_value(name)\n",
			kind:   "polyglot_import_call",
			want:   "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tree := mustParse(t, tc.source, tc.lang)
			call := findByKind(tree.Root(), tc.kind)
			require.NotNil(t, call)

			name, err := call.BindingName()
			require.NoError(t, err)
			require.Equal(t, tc.want, name)
		})
	}
}

func TestZipperBindingNameOnWrongNode(t *testing.T) {
	tree := mustParse(t, "print(1)\n", Python)
	_, err := tree.Root().BindingName()
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestZipperCodeAndPositions(t *testing.T) {
	source := "polyglot.eval(language=\"js\", string=\"1\")\n"
	tree := mustParse(t, source, Python)

	eval := findByKind(tree.Root(), "polyglot_eval_call")
	require.NotNil(t, eval)
	require.Equal(t, "polyglot.eval(language=\"js\", string=\"1\")", eval.Code())
	require.Equal(t, Position{Row: 0, Column: 0}, eval.StartPosition())
	require.Equal(t, Position{Row: 0, Column: 40}, eval.EndPosition())

	// Positions inside a guest tree are relative to the guest's own source.
	require.True(t, eval.GotoFirstChild())
	require.Equal(t, Position{Row: 0, Column: 0}, eval.StartPosition())
	require.Equal(t, "1", eval.Code())
}

func TestZipperCloneIsIndependent(t *testing.T) {
	source := "polyglot.eval(language=\"js\", string=\"1\")\n"
	tree := mustParse(t, source, Python)

	z := tree.Root()
	snapshot := z.Clone()
	require.True(t, z.GotoFirstChild())
	require.True(t, z.GotoFirstChild())

	require.Equal(t, "module", snapshot.Kind())
	require.Equal(t, Python, snapshot.Language())
	require.NotEqual(t, snapshot.Kind(), z.Kind())
}
