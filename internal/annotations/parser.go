// Package annotations turns raw documentation comments into typed annotation records.
package annotations

import (
	"strings"

	"github.com/mvp-joe/fndoc/internal/docmeta"
)

// state is the parser's position relative to an open tag.
type state int

const (
	// stateIdle means no tag is open; non-tag lines are dropped.
	stateIdle state = iota
	// stateCollecting means a tag is open and accumulating content.
	stateCollecting
)

// pending is the annotation being accumulated while collecting.
type pending struct {
	tag       string
	content   strings.Builder
	multiLine bool
}

// machine is the line-oriented two-state parser.
type machine struct {
	cfg     docmeta.AnnotationConfig
	state   state
	current pending
	out     []docmeta.AnnotationMetadata
}

// Parse splits a raw comment into annotations for the tags in cfg.
// It never fails: unrecognized or malformed input yields an empty, non-nil slice.
func Parse(raw string, cfg docmeta.AnnotationConfig) []docmeta.AnnotationMetadata {
	m := &machine{
		cfg: cfg,
		out: []docmeta.AnnotationMetadata{},
	}
	if raw == "" {
		return m.out
	}

	markers := cfg.CommentMarkers
	for _, line := range strings.Split(raw, "\n") {
		m.feed(CleanLine(line, markers))
	}
	m.finalize()

	return m.out
}

// feed advances the machine by one cleaned line.
func (m *machine) feed(line string) {
	if tag, ok := MatchTag(line, m.cfg.SupportedAnnotationTags); ok {
		m.finalize()
		m.state = stateCollecting
		m.current.tag = tag
		m.current.content.WriteString(strings.TrimSpace(line[len(tag):]))
		return
	}

	switch m.state {
	case stateIdle:
		// Free prose outside any tag is not preserved.
	case stateCollecting:
		if !m.cfg.MultiLineContinuation || line == "" {
			return
		}
		if m.current.content.Len() > 0 {
			m.current.content.WriteByte('\n')
		}
		m.current.content.WriteString(line)
		m.current.multiLine = true
	}
}

// finalize emits the open annotation, if any, and returns to idle.
// Annotations whose content is empty after trimming are dropped.
func (m *machine) finalize() {
	if m.state != stateCollecting {
		return
	}

	content := strings.TrimSpace(m.current.content.String())
	if content != "" {
		m.out = append(m.out, docmeta.AnnotationMetadata{
			Tag:         m.current.tag,
			Content:     content,
			IsMultiLine: m.current.multiLine,
		})
	}

	m.current = pending{}
	m.state = stateIdle
}

// CleanLine strips comment decoration from a single physical line: the
// leading run of whitespace and marker characters, a trailing block closer,
// and surrounding whitespace.
func CleanLine(line, markers string) string {
	line = strings.TrimLeft(line, " \t\r"+markers)
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, "*/")
	return strings.TrimSpace(line)
}

// MatchTag returns the first tag in tags that prefixes line.
// Empty tags are ignored so they can't match every line.
func MatchTag(line string, tags []string) (string, bool) {
	for _, tag := range tags {
		if tag != "" && strings.HasPrefix(line, tag) {
			return tag, true
		}
	}
	return "", false
}
