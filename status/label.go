package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen bounds a label in bytes; event type names fit
const MaxLabelLen = 32

// Label is a short text metric such as the last event name
// The zero value reads as ""
type Label struct {
	text atomic.Pointer[string]
}

// Set stores s, cut to MaxLabelLen bytes on a rune boundary
func (l *Label) Set(s string) {
	if len(s) > MaxLabelLen {
		n := MaxLabelLen
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n]
	}
	l.text.Store(&s)
}

// Value returns the stored text
func (l *Label) Value() string {
	if p := l.text.Load(); p != nil {
		return *p
	}
	return ""
}
