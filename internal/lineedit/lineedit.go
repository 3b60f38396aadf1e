// Package lineedit holds the history and completion state behind the command prompt.
package lineedit

import "strings"

// Editor tracks submitted lines and the history cursor. The text buffer itself
// belongs to the input widget; Editor only computes what it should contain.
type Editor struct {
	history  []string
	index    int // len(history) means a fresh line is being edited
	commands []string
}

// New creates an Editor completing against the given command names.
func New(commands []string) *Editor {
	return &Editor{commands: append([]string(nil), commands...)}
}

// Submit records buffer in history when it is not blank and resets the cursor.
// It returns the trimmed line and whether anything should be executed.
func (e *Editor) Submit(buffer string) (string, bool) {
	line := strings.TrimSpace(buffer)
	if line == "" {
		return "", false
	}
	e.history = append(e.history, line)
	e.index = len(e.history)
	return line, true
}

// Prev moves to the previous history entry. ok is false at the oldest entry
// or with empty history, in which case the buffer should stay as it is.
func (e *Editor) Prev() (buffer string, ok bool) {
	if e.index == 0 {
		return "", false
	}
	e.index--
	return e.history[e.index], true
}

// Next moves to the next history entry, or past the newest one to a fresh
// empty line.
func (e *Editor) Next() string {
	if e.index < len(e.history)-1 {
		e.index++
		return e.history[e.index]
	}
	e.index = len(e.history)
	return ""
}

// Complete returns the single command name that buffer is a prefix of,
// followed by a space. With zero or several candidates buffer is returned
// unchanged and ok is false.
func (e *Editor) Complete(buffer string) (string, bool) {
	match := ""
	for _, name := range e.commands {
		if !strings.HasPrefix(name, buffer) {
			continue
		}
		if match != "" {
			return buffer, false
		}
		match = name
	}
	if match == "" {
		return buffer, false
	}
	return match + " ", true
}
