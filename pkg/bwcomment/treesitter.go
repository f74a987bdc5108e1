package bwcomment

import (
	"iter"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcore"
)

// grammar binds one tree-sitter language to the set of node kinds that
// grammar reports as comments, and the delimiter-stripping policy that
// applies to them. Parser construction is one-shot per language (spec.md
// §9): the sitter.Language pointer is built lazily and cached.
type grammar struct {
	newLanguage  func() *sitter.Language
	commentKinds map[string]bool
	strip        stripFunc

	once sync.Once
	lang *sitter.Language
}

func newGrammar(newLanguage func() *sitter.Language, strip stripFunc, kinds ...string) *grammar {
	set := make(map[string]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &grammar{newLanguage: newLanguage, commentKinds: set, strip: strip}
}

func (g *grammar) language() *sitter.Language {
	g.once.Do(func() {
		g.lang = g.newLanguage()
	})
	return g.lang
}

// treeSitterExtractor is the default Extractor implementation: it parses
// source with the language's grammar and walks the resulting tree for
// comment-kind nodes, so that comment-like text inside strings, regexes,
// and heredocs is never misclassified (spec.md §4.1).
type treeSitterExtractor struct {
	g *grammar
}

func (e *treeSitterExtractor) Parse(source []byte) iter.Seq[bwcore.Comment] {
	return func(yield func(bwcore.Comment) bool) {
		parser := sitter.NewParser()
		defer parser.Close()
		if err := parser.SetLanguage(e.g.language()); err != nil {
			extractorLog.Printf("set language failed: %v", err)
			return
		}
		tree := parser.Parse(source, nil)
		if tree == nil {
			return
		}
		defer tree.Close()

		idx := bwcore.BuildNewlineIndex(source)
		root := tree.RootNode()
		var walk func(n *sitter.Node) bool
		walk = func(n *sitter.Node) bool {
			if n == nil {
				return true
			}
			if e.g.commentKinds[n.Kind()] {
				start, end := int(n.StartByte()), int(n.EndByte())
				c, keep := buildComment(source, idx, start, end, e.g.strip)
				if keep && !yield(c) {
					return false
				}
				return true
			}
			count := n.ChildCount()
			for i := uint(0); i < count; i++ {
				if !walk(n.Child(i)) {
					return false
				}
			}
			return true
		}
		walk(&root)
	}
}

// newTreeSitterExtractor builds an Extractor over a grammar.
func newTreeSitterExtractor(g *grammar) Extractor {
	return &treeSitterExtractor{g: g}
}
