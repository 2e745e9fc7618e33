// Package diag collects non-fatal messages produced while processing a
// document.
package diag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dgallion1/docmath/internal/doctree"
)

// Severity of a message.
type Severity string

const (
	SevInfo    Severity = "info"
	SevWarning Severity = "warning"
	SevError   Severity = "error"
)

// Message is a single diagnostic attached to a File.
type Message struct {
	Reason    string
	Cause     error
	Ancestors []*doctree.Node // Root first, ending with the offending node
	Place     string          // Element path of the offending node
	RuleID    string
	Source    string
	Severity  Severity
}

// MessageOptions carries the optional fields of a Message.
type MessageOptions struct {
	Cause     error
	Ancestors []*doctree.Node
	Place     string
	RuleID    string
	Source    string
	Severity  Severity
}

func (m *Message) Error() string {
	return m.String()
}

// String formats the message as "reason: cause [source:rule]".
func (m *Message) String() string {
	var b strings.Builder
	b.WriteString(m.Reason)
	if m.Cause != nil {
		b.WriteString(": ")
		b.WriteString(m.Cause.Error())
	}
	if m.Source != "" || m.RuleID != "" {
		fmt.Fprintf(&b, " [%s:%s]", m.Source, m.RuleID)
	}
	return b.String()
}

// File is the per-document diagnostic sink. Messages are only ever appended.
type File struct {
	Path     string
	Messages []*Message
}

// NewFile returns an empty File for the document at path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Message appends a diagnostic and returns it. Severity defaults to warning.
// Calling Message on a nil File discards the diagnostic.
func (f *File) Message(reason string, opts MessageOptions) *Message {
	m := &Message{
		Reason:    reason,
		Cause:     opts.Cause,
		Ancestors: slices.Clone(opts.Ancestors),
		Place:     opts.Place,
		RuleID:    opts.RuleID,
		Source:    opts.Source,
		Severity:  opts.Severity,
	}
	if m.Severity == "" {
		m.Severity = SevWarning
	}
	if f != nil {
		f.Messages = append(f.Messages, m)
	}
	return m
}

// Len returns the number of messages.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Messages)
}

// HasErrors reports whether any message has error severity.
func (f *File) HasErrors() bool {
	if f == nil {
		return false
	}
	for _, m := range f.Messages {
		if m.Severity == SevError {
			return true
		}
	}
	return false
}

// Location prefixes a message with the file path and place.
func (f *File) Location(m *Message) string {
	path := f.Path
	if path == "" {
		path = "<input>"
	}
	if m.Place == "" {
		return path
	}
	return path + ":" + m.Place
}

// Entry is the JSON form of a Message.
type Entry struct {
	Reason   string   `json:"reason"`
	Cause    string   `json:"cause,omitempty"`
	Place    string   `json:"place,omitempty"`
	RuleID   string   `json:"rule_id,omitempty"`
	Source   string   `json:"source,omitempty"`
	Severity Severity `json:"severity"`
}

// Entries returns JSON-safe copies of all messages.
func (f *File) Entries() []Entry {
	entries := make([]Entry, 0, f.Len())
	if f == nil {
		return entries
	}
	for _, m := range f.Messages {
		e := Entry{
			Reason:   m.Reason,
			Place:    m.Place,
			RuleID:   m.RuleID,
			Source:   m.Source,
			Severity: m.Severity,
		}
		if m.Cause != nil {
			e.Cause = m.Cause.Error()
		}
		entries = append(entries, e)
	}
	return entries
}
