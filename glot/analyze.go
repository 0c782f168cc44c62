package glot

import (
	"errors"
	"runtime"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Link describes one resolved cross-language evaluate link.
type Link struct {
	// File is the source file of the tree containing the call site, empty
	// for trees parsed from in-memory code.
	File string `json:"file,omitempty"`

	// Pos is the call site's position within that tree's source.
	Pos Position `json:"pos"`

	// From and To are the host and guest language names.
	From string `json:"from"`
	To   string `json:"to"`

	// Target is the guest source file for evaluate-file links, empty for
	// inline code payloads.
	Target string `json:"target,omitempty"`
}

// Binding describes the statically declared name of one import or export
// call anywhere in a tree forest.
type Binding struct {
	File     string   `json:"file,omitempty"`
	Pos      Position `json:"pos"`
	Language string   `json:"language"`
	Kind     string   `json:"kind"` // "import" or "export"
	Name     string   `json:"name,omitempty"`
}

// Links returns every resolved cross-language link in this tree and its
// subtrees, in traversal order.
func (t *Tree) Links() []Link {
	var out []Link
	t.walkLinks(t.rootNode(), &out)
	return out
}

func (t *Tree) walkLinks(node *sitter.Node, out *[]Link) {
	if sub := t.subtree(node); sub != nil {
		p := node.StartPoint()
		*out = append(*out, Link{
			File:   t.path,
			Pos:    Position{Row: p.Row, Column: p.Column},
			From:   t.lang.String(),
			To:     sub.lang.String(),
			Target: sub.path,
		})
		sub.walkLinks(sub.rootNode(), out)
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		t.walkLinks(node.Child(i), out)
	}
}

// Bindings returns every import/export binding declared in this tree and
// its subtrees, in traversal order.
func (t *Tree) Bindings() []Binding {
	var out []Binding
	t.walkBindings(t.rootNode(), &out)
	return out
}

func (t *Tree) walkBindings(node *sitter.Node, out *[]Binding) {
	if sub := t.subtree(node); sub != nil {
		sub.walkBindings(sub.rootNode(), out)
		return
	}

	kind := ""
	switch {
	case t.isImportCall(node):
		kind = "import"
	case t.isExportCall(node):
		kind = "export"
	}
	if kind != "" {
		p := node.StartPoint()
		*out = append(*out, Binding{
			File:     t.path,
			Pos:      Position{Row: p.Row, Column: p.Column},
			Language: t.lang.String(),
			Kind:     kind,
			Name:     t.bindingName(node),
		})
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		t.walkBindings(node.Child(i), out)
	}
}

// LinksOptions configures the Links function.
type LinksOptions struct {
	// Path is the root directory to scan for host files.
	// If empty, current directory is used.
	Path string

	// File is a single file to analyze. If set, Path is ignored.
	File string

	// Language is the host language name. If empty it is guessed from
	// File's extension.
	Language string

	// Jobs is the number of parallel workers.
	// If 0, defaults to number of CPUs.
	Jobs int

	// MaxBytes skips files larger than this size.
	// If 0, defaults to 2 MiB.
	MaxBytes int64

	// MaxDepth bounds polyglot nesting; 0 means the default.
	MaxDepth int
}

// LinksResult is the output of a Links run.
type LinksResult struct {
	Links       []Link       `json:"links"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Links builds polyglot trees for the selected host files and reports every
// cross-language link found in them.
func Links(opts LinksOptions) (*LinksResult, error) {
	lang, files, err := prepare(opts.Language, opts.File, opts.Path, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}

	outcomes := runWorkers(files, opts.Jobs, func(job FileJob) []fileOutcome {
		return []fileOutcome{analyzeFile(job, lang, opts.MaxDepth)}
	})

	result := &LinksResult{Links: []Link{}}
	for _, o := range outcomes {
		result.Links = append(result.Links, o.links...)
		result.Diagnostics = append(result.Diagnostics, o.diags...)
	}
	sortLinks(result.Links)
	sortDiagnostics(result.Diagnostics)
	return result, nil
}

// BindingsOptions configures the Bindings function. The fields mirror
// LinksOptions.
type BindingsOptions struct {
	Path     string
	File     string
	Language string
	Jobs     int
	MaxBytes int64
	MaxDepth int
}

// BindingsResult is the output of a Bindings run.
type BindingsResult struct {
	Bindings    []Binding    `json:"bindings"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Bindings builds polyglot trees for the selected host files and reports
// every import/export binding name found in them.
func Bindings(opts BindingsOptions) (*BindingsResult, error) {
	lang, files, err := prepare(opts.Language, opts.File, opts.Path, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	if opts.Jobs == 0 {
		opts.Jobs = runtime.NumCPU()
	}

	outcomes := runWorkers(files, opts.Jobs, func(job FileJob) []fileOutcome {
		return []fileOutcome{analyzeFile(job, lang, opts.MaxDepth)}
	})

	result := &BindingsResult{Bindings: []Binding{}}
	for _, o := range outcomes {
		result.Bindings = append(result.Bindings, o.bindings...)
		result.Diagnostics = append(result.Diagnostics, o.diags...)
	}
	sortBindings(result.Bindings)
	sortDiagnostics(result.Diagnostics)
	return result, nil
}

// RenderOptions configures the Render function.
type RenderOptions struct {
	// File is the file to render (required).
	File string

	// Language is the host language name. If empty it is guessed from
	// File's extension.
	Language string

	// MaxDepth bounds polyglot nesting; 0 means the default.
	MaxDepth int
}

// RenderResult is the output of a Render run.
type RenderResult struct {
	Text        string       `json:"text"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Render builds the polyglot tree for one file and returns its indented
// outline across all language boundaries.
func Render(opts RenderOptions) (*RenderResult, error) {
	if opts.File == "" {
		return nil, errors.New("file is required")
	}
	lang, err := resolveLanguage(opts.Language, opts.File)
	if err != nil {
		return nil, err
	}

	tree, err := ParseFile(opts.File, lang, WithMaxDepth(orDefaultDepth(opts.MaxDepth)))
	if err != nil {
		return nil, err
	}

	tp := NewTreePrinter()
	tree.Apply(tp)
	return &RenderResult{
		Text:        tp.Result(),
		Diagnostics: tree.Diagnostics(),
	}, nil
}

// fileOutcome carries everything extracted from one host file.
type fileOutcome struct {
	links    []Link
	bindings []Binding
	diags    []Diagnostic
}

func analyzeFile(job FileJob, lang Language, maxDepth int) fileOutcome {
	tree, err := ParseFile(job.AbsPath, lang, WithMaxDepth(orDefaultDepth(maxDepth)))
	if err != nil {
		return fileOutcome{diags: []Diagnostic{{Path: job.AbsPath, Message: err.Error()}}}
	}
	return fileOutcome{
		links:    tree.Links(),
		bindings: tree.Bindings(),
		diags:    tree.Diagnostics(),
	}
}

// prepare resolves the host language and collects the files to analyze.
func prepare(language, file, root string, maxBytes int64) (Language, []FileJob, error) {
	lang, err := resolveLanguage(language, file)
	if err != nil {
		return 0, nil, err
	}

	if maxBytes == 0 {
		maxBytes = 2 * 1024 * 1024
	}

	if file != "" {
		sc := newScanner(scannerConfig{lang: lang})
		job, err := sc.collectSingle(file)
		if err != nil {
			return 0, nil, err
		}
		return lang, []FileJob{job}, nil
	}

	if root == "" {
		root = "."
	}
	sc := newScanner(scannerConfig{
		root:     root,
		lang:     lang,
		maxBytes: maxBytes,
	})
	files, err := sc.collect()
	if err != nil {
		return 0, nil, err
	}
	return lang, files, nil
}

func resolveLanguage(name, file string) (Language, error) {
	if name != "" {
		return LanguageFromName(name)
	}
	if file != "" {
		return LanguageForFile(file)
	}
	return 0, errors.New("language is required")
}

func orDefaultDepth(depth int) int {
	if depth == 0 {
		return defaultMaxDepth
	}
	return depth
}

func sortLinks(links []Link) {
	sort.Slice(links, func(i, j int) bool {
		if links[i].File != links[j].File {
			return links[i].File < links[j].File
		}
		if links[i].Pos.Row != links[j].Pos.Row {
			return links[i].Pos.Row < links[j].Pos.Row
		}
		return links[i].Pos.Column < links[j].Pos.Column
	})
}

func sortBindings(bindings []Binding) {
	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].File != bindings[j].File {
			return bindings[i].File < bindings[j].File
		}
		if bindings[i].Pos.Row != bindings[j].Pos.Row {
			return bindings[i].Pos.Row < bindings[j].Pos.Row
		}
		return bindings[i].Pos.Column < bindings[j].Pos.Column
	})
}

func sortDiagnostics(diags []Diagnostic) {
	sort.Slice(diags, func(i, j int) bool {
		if diags[i].Path != diags[j].Path {
			return diags[i].Path < diags[j].Path
		}
		if diags[i].Pos.Row != diags[j].Pos.Row {
			return diags[i].Pos.Row < diags[j].Pos.Row
		}
		return diags[i].Pos.Column < diags[j].Pos.Column
	})
}
