// Package icons maps panel icons to terminal glyphs.
package icons

import (
	"sync"

	"github.com/yaklabco/diagview/pkg/config"
	"github.com/yaklabco/diagview/pkg/langdetect"
	"github.com/yaklabco/diagview/pkg/problems"
)

type glyphs struct {
	file, errorIcon, warning, info, hint, link string
}

var (
	asciiGlyphs   = glyphs{file: "#", errorIcon: "E", warning: "W", info: "I", hint: "H", link: ">"}
	unicodeGlyphs = glyphs{file: "▤", errorIcon: "✖", warning: "▲", info: "●", hint: "◆", link: "↳"}
	nerdGlyphs    = glyphs{file: "\uf15b", errorIcon: "\uf057", warning: "\uf071", info: "\uf05a", hint: "\uf0eb", link: "\uf0c1"}
)

// nerdLanguages are Nerd Font file glyphs keyed by langdetect tag.
var nerdLanguages = map[string]string{
	"go":         "\ue627",
	"python":     "\ue606",
	"rust":       "\ue7a8",
	"javascript": "\ue74e",
	"typescript": "\ue628",
	"json":       "\ue60b",
	"yaml":       "\ue6a8",
	"markdown":   "\ue609",
	"bash":       "\ue795",
	"dockerfile": "\ue7b0",
	"html":       "\ue736",
	"css":        "\ue749",
	"java":       "\ue738",
	"ruby":       "\ue739",
	"c":          "\ue61e",
	"c++":        "\ue61d",
}

// Set resolves icons for one mode. File languages are detected once per path.
type Set struct {
	mode   config.IconMode
	glyphs glyphs

	mu    sync.Mutex
	langs map[string]string
}

// NewSet returns the glyph set for mode. Unknown modes use unicode glyphs.
func NewSet(mode config.IconMode) *Set {
	set := &Set{mode: mode, glyphs: unicodeGlyphs, langs: make(map[string]string)}
	switch mode {
	case config.IconsASCII:
		set.glyphs = asciiGlyphs
	case config.IconsNerd:
		set.glyphs = nerdGlyphs
	}
	return set
}

// Mode returns the icon mode.
func (s *Set) Mode() config.IconMode {
	return s.mode
}

// Glyph returns the glyph for icon.
func (s *Set) Glyph(icon problems.Icon) string {
	switch icon.Kind {
	case problems.IconFile:
		return s.file(icon.Path)
	case problems.IconError:
		return s.glyphs.errorIcon
	case problems.IconWarning:
		return s.glyphs.warning
	case problems.IconInfo:
		return s.glyphs.info
	case problems.IconHint:
		return s.glyphs.hint
	case problems.IconLink:
		return s.glyphs.link
	default:
		return "?"
	}
}

func (s *Set) file(path string) string {
	if s.mode != config.IconsNerd || path == "" {
		return s.glyphs.file
	}
	if glyph, ok := nerdLanguages[s.language(path)]; ok {
		return glyph
	}
	return s.glyphs.file
}

func (s *Set) language(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lang, ok := s.langs[path]
	if !ok {
		lang = langdetect.DetectFile(path)
		s.langs[path] = lang
	}
	return lang
}
