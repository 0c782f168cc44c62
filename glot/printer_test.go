package glot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingProcessor struct {
	calls int
	kinds []string
}

func (r *recordingProcessor) Process(z *Zipper) {
	r.calls++
	r.kinds = append(r.kinds, z.Kind())
}

func TestApplyInvokesProcessorOnceAtRoot(t *testing.T) {
	tree := mustParse(t, "print(1)\n", Python)

	rp := &recordingProcessor{}
	tree.Apply(rp)
	require.Equal(t, 1, rp.calls)
	require.Equal(t, []string{"module"}, rp.kinds)
}

func TestTreePrinterCrossesLanguageBoundaries(t *testing.T) {
	tree := mustParse(t, "polyglot.eval(language=\"js\", string=\"1\")\n", Python)

	tp := NewTreePrinter()
	tree.Apply(tp)

	want := "module\n" +
		"  expression_statement\n" +
		"    polyglot_eval_call\n" +
		"      program\n" +
		"        expression_statement\n" +
		"          number \"1\"\n"
	require.Equal(t, want, tp.Result())
}

func TestTreePrinterLeafFormat(t *testing.T) {
	tree := mustParse(t, "x\n", Python)

	tp := NewTreePrinter()
	tree.Apply(tp)

	want := "module\n" +
		"  expression_statement\n" +
		"    identifier \"x\"\n"
	require.Equal(t, want, tp.Result())
}

func TestTreePrinterAccumulatesAcrossTrees(t *testing.T) {
	first := mustParse(t, "x\n", Python)
	second := mustParse(t, "y\n", Python)

	tp := NewTreePrinter()
	first.Apply(tp)
	second.Apply(tp)

	require.Contains(t, tp.Result(), "identifier \"x\"")
	require.Contains(t, tp.Result(), "identifier \"y\"")
}
