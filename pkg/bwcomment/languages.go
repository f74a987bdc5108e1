package bwcomment

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_c_sharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	tree_sitter_sql "github.com/DerekStride/tree-sitter-sql/bindings/go"
	tree_sitter_toml "github.com/tree-sitter-grammars/tree-sitter-toml/bindings/go"
	tree_sitter_yaml "github.com/tree-sitter-grammars/tree-sitter-yaml/bindings/go"
)

func lang(f func() *sitter.Language) func() *sitter.Language { return f }

// Grammars that genuinely lack a tree-sitter-org or well-known community Go
// binding in the retrieval pack (Kotlin, Swift, Makefile, XML) fall back to
// the hand-written lineScanExtractor in manual.go, and Markdown has its own
// line-oriented extractor in markdown.go. Every language built below uses
// the grammar-aware tree-sitter path.

var (
	goGrammar         = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_go.Language()) }), stripCStyle, "comment")
	cGrammar          = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_c.Language()) }), stripCStyle, "comment")
	cppGrammar        = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_cpp.Language()) }), stripCStyle, "comment")
	csharpGrammar     = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_c_sharp.Language()) }), stripCStyle, "comment")
	javaGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_java.Language()) }), stripCStyle, "line_comment", "block_comment")
	jsGrammar         = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_javascript.Language()) }), stripCStyle, "comment")
	tsGrammar         = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()) }), stripCStyle, "comment")
	tsxGrammar        = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()) }), stripCStyle, "comment")
	phpGrammar        = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_php.LanguagePHP()) }), stripCStyle, "comment")
	rubyGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_ruby.Language()) }), stripHash, "comment")
	rustGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_rust.Language()) }), stripCStyle, "line_comment", "block_comment")
	pythonGrammar     = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_python.Language()) }), stripHash, "comment")
	cssGrammar        = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_css.Language()) }), stripCStyle, "comment")
	htmlGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_html.Language()) }), stripHTML, "comment")
	bashGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_bash.Language()) }), stripBash, "comment")
	yamlGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_yaml.Language()) }), stripHash, "comment")
	tomlGrammar       = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_toml.Language()) }), stripHash, "comment")
	sqlGrammar        = newGrammar(lang(func() *sitter.Language { return sitter.NewLanguage(tree_sitter_sql.Language()) }), stripSQL, "comment", "marginalia")
)

// NewGoExtractor, NewPythonExtractor, ... construct the per-language
// Extractor instances consumed by the Language Registry (pkg/bwlang).
// Each grammar is parsed once per file and shares a process-wide cached
// sitter.Language.
func NewGoExtractor() Extractor         { return newTreeSitterExtractor(goGrammar) }
func NewCExtractor() Extractor          { return newTreeSitterExtractor(cGrammar) }
func NewCppExtractor() Extractor        { return newTreeSitterExtractor(cppGrammar) }
func NewCSharpExtractor() Extractor     { return newTreeSitterExtractor(csharpGrammar) }
func NewJavaExtractor() Extractor       { return newTreeSitterExtractor(javaGrammar) }
func NewJavaScriptExtractor() Extractor { return newTreeSitterExtractor(jsGrammar) }
func NewTypeScriptExtractor() Extractor { return newTreeSitterExtractor(tsGrammar) }
func NewTSXExtractor() Extractor        { return newTreeSitterExtractor(tsxGrammar) }
func NewPHPExtractor() Extractor        { return newTreeSitterExtractor(phpGrammar) }
func NewRubyExtractor() Extractor       { return newTreeSitterExtractor(rubyGrammar) }
func NewRustExtractor() Extractor       { return newTreeSitterExtractor(rustGrammar) }
func NewPythonExtractor() Extractor     { return newTreeSitterExtractor(pythonGrammar) }
func NewCSSExtractor() Extractor        { return newTreeSitterExtractor(cssGrammar) }
func NewHTMLExtractor() Extractor       { return newTreeSitterExtractor(htmlGrammar) }
func NewBashExtractor() Extractor       { return newTreeSitterExtractor(bashGrammar) }
func NewYAMLExtractor() Extractor       { return newTreeSitterExtractor(yamlGrammar) }
func NewTOMLExtractor() Extractor       { return newTreeSitterExtractor(tomlGrammar) }
func NewSQLExtractor() Extractor        { return newTreeSitterExtractor(sqlGrammar) }
