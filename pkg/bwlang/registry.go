// Package bwlang implements the Language Registry component (spec.md §2,
// §9): a process-wide singleton mapping file extensions (and a few
// basenames) to a bwcomment.Extractor, built once at startup.
package bwlang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/blockwatch-dev/blockwatch/pkg/bwcomment"
)

// Registry maps extensions/basenames to language extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[string]bwcomment.Extractor // keyed by canonical language name
	byExt      map[string]string              // extension (with leading '.') -> language name
	byBasename map[string]string              // exact basename -> language name
	remap      map[string]string              // user -E extension remap, ext -> ext
}

// canonical language names, the keys of the extractor table. -E remaps
// take extensions, not these names.
const (
	LangGo         = "go"
	LangC          = "c"
	LangCpp        = "cpp"
	LangCSharp     = "csharp"
	LangJava       = "java"
	LangJavaScript = "javascript"
	LangTypeScript = "typescript"
	LangTSX        = "tsx"
	LangSwift      = "swift"
	LangKotlin     = "kotlin"
	LangPHP        = "php"
	LangCSS        = "css"
	LangPython     = "python"
	LangRuby       = "ruby"
	LangRust       = "rust"
	LangYAML       = "yaml"
	LangTOML       = "toml"
	LangMakefile   = "makefile"
	LangBash       = "bash"
	LangSQL        = "sql"
	LangHTML       = "html"
	LangXML        = "xml"
	LangMarkdown   = "markdown"
)

// New builds the default registry with every language in spec.md §4.1
// wired to its extractor.
func New() *Registry {
	r := &Registry{
		extractors: map[string]bwcomment.Extractor{
			LangGo:         bwcomment.NewGoExtractor(),
			LangC:          bwcomment.NewCExtractor(),
			LangCpp:        bwcomment.NewCppExtractor(),
			LangCSharp:     bwcomment.NewCSharpExtractor(),
			LangJava:       bwcomment.NewJavaExtractor(),
			LangJavaScript: bwcomment.NewJavaScriptExtractor(),
			LangTypeScript: bwcomment.NewTypeScriptExtractor(),
			LangTSX:        bwcomment.NewTSXExtractor(),
			LangSwift:      bwcomment.NewSwiftExtractor(),
			LangKotlin:     bwcomment.NewKotlinExtractor(),
			LangPHP:        bwcomment.NewPHPExtractor(),
			LangCSS:        bwcomment.NewCSSExtractor(),
			LangPython:     bwcomment.NewPythonExtractor(),
			LangRuby:       bwcomment.NewRubyExtractor(),
			LangRust:       bwcomment.NewRustExtractor(),
			LangYAML:       bwcomment.NewYAMLExtractor(),
			LangTOML:       bwcomment.NewTOMLExtractor(),
			LangMakefile:   bwcomment.NewMakefileExtractor(),
			LangBash:       bwcomment.NewBashExtractor(),
			LangSQL:        bwcomment.NewSQLExtractor(),
			LangHTML:       bwcomment.NewHTMLExtractor(),
			LangXML:        bwcomment.NewXMLExtractor(),
			LangMarkdown:   bwcomment.NewMarkdownExtractor(),
		},
		byExt: map[string]string{
			".go":       LangGo,
			".c":        LangC,
			".h":        LangC,
			".cc":       LangCpp,
			".cpp":      LangCpp,
			".cxx":      LangCpp,
			".hpp":      LangCpp,
			".hh":       LangCpp,
			".cs":       LangCSharp,
			".java":     LangJava,
			".js":       LangJavaScript,
			".jsx":      LangJavaScript,
			".mjs":      LangJavaScript,
			".ts":       LangTypeScript,
			".tsx":      LangTSX,
			".swift":    LangSwift,
			".kt":       LangKotlin,
			".kts":      LangKotlin,
			".php":      LangPHP,
			".css":      LangCSS,
			".py":       LangPython,
			".rb":       LangRuby,
			".rs":       LangRust,
			".yaml":     LangYAML,
			".yml":      LangYAML,
			".toml":     LangTOML,
			".sh":       LangBash,
			".bash":     LangBash,
			".sql":      LangSQL,
			".html":     LangHTML,
			".htm":      LangHTML,
			".xml":      LangXML,
			".md":       LangMarkdown,
			".markdown": LangMarkdown,
		},
		byBasename: map[string]string{
			"Makefile": LangMakefile,
			"makefile": LangMakefile,
			"GNUmakefile": LangMakefile,
		},
		remap: map[string]string{},
	}
	return r
}

// SupportedExtensions returns every registered extension, used to
// validate -E KEY=VALUE flags (spec.md §6).
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.byExt))
	for e := range r.byExt {
		exts = append(exts, e)
	}
	return exts
}

// AddRemap registers a -E KEY=VALUE extension remap. VALUE must be a
// known extension (the target whose extractor will be used for files
// ending in KEY); KEY may be any extension, registered or not. It
// reports false when VALUE is not registered.
func (r *Registry) AddRemap(from, to string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byExt[to]; !ok {
		return false
	}
	r.remap[from] = to
	return true
}

// ExtractorFor returns the Extractor registered for path, or nil if no
// language is registered for it (spec.md §4.5: "files without a
// registered parser are skipped").
func (r *Registry) ExtractorFor(path string) (bwcomment.Extractor, string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	base := filepath.Base(path)
	if name, ok := r.byBasename[base]; ok {
		return r.extractors[name], name, true
	}

	ext := strings.ToLower(filepath.Ext(path))
	if target, ok := r.remap[ext]; ok {
		ext = target
	}
	name, ok := r.byExt[ext]
	if !ok {
		return nil, "", false
	}
	return r.extractors[name], name, true
}
