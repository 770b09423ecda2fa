package docmeta

import "strings"

// Default values for AnnotationConfig.
const (
	DefaultTextEncoding   = "utf-8"
	DefaultCommentMarkers = "/*"
)

// DefaultSupportedTags returns the tags recognized when none are configured.
func DefaultSupportedTags() []string {
	return []string{"@param", "@returns", "@throws"}
}

// AnnotationConfig controls how documentation comments are turned into annotations.
// A value is constructed once per extraction run and passed by value; neither
// the locator nor the annotation parser modifies it.
type AnnotationConfig struct {
	// SupportedAnnotationTags are matched case-sensitively as prefixes of a
	// cleaned comment line. The first matching entry in this order wins.
	SupportedAnnotationTags []string

	// MultiLineContinuation appends non-tag lines to the open annotation.
	MultiLineContinuation bool

	// TextEncoding is the label used to decode source bytes (e.g. "utf-8", "latin1").
	TextEncoding string

	// CommentMarkers are stripped from the start of every comment line,
	// together with whitespace.
	CommentMarkers string
}

// DefaultAnnotationConfig returns the configuration used when nothing is configured.
func DefaultAnnotationConfig() AnnotationConfig {
	return AnnotationConfig{
		SupportedAnnotationTags: DefaultSupportedTags(),
		MultiLineContinuation:   true,
		TextEncoding:            DefaultTextEncoding,
		CommentMarkers:          DefaultCommentMarkers,
	}
}

// Clone returns a copy that shares no slices with c.
func (c AnnotationConfig) Clone() AnnotationConfig {
	c.SupportedAnnotationTags = append([]string(nil), c.SupportedAnnotationTags...)
	return c
}

// WithCommentMarkers returns a copy of the config whose marker set also contains extra.
func (c AnnotationConfig) WithCommentMarkers(extra string) AnnotationConfig {
	markers := c.CommentMarkers
	for _, r := range extra {
		if !strings.ContainsRune(markers, r) {
			markers += string(r)
		}
	}
	c = c.Clone()
	c.CommentMarkers = markers
	return c
}

// Fingerprint identifies the parse-relevant parts of the config.
// Two configs with the same fingerprint produce identical annotations.
func (c AnnotationConfig) Fingerprint() string {
	var b strings.Builder
	b.WriteString(strings.Join(c.SupportedAnnotationTags, "\x1f"))
	b.WriteByte('\x1e')
	if c.MultiLineContinuation {
		b.WriteByte('1')
	} else {
		b.WriteByte('0')
	}
	b.WriteByte('\x1e')
	b.WriteString(strings.ToLower(c.TextEncoding))
	b.WriteByte('\x1e')
	b.WriteString(c.CommentMarkers)
	return b.String()
}

// Location is a 1-based source position. Column counts Unicode code points.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// AnnotationMetadata is one recognized tag occurrence in a documentation comment.
type AnnotationMetadata struct {
	Tag         string `json:"tag"`
	Content     string `json:"content"`
	IsMultiLine bool   `json:"isMultiLine"`
}

// FunctionMetadata describes one named function declaration.
type FunctionMetadata struct {
	Name        string               `json:"name"`
	Annotations []AnnotationMetadata `json:"annotations"`
	Location    Location             `json:"location"`
}

// FileMetadata groups the functions extracted from one source file.
type FileMetadata struct {
	Path      string             `json:"path"`
	Language  string             `json:"language"`
	Functions []FunctionMetadata `json:"functions"`
}
