package lineedit

// History returns the submitted lines, oldest first.
func (e *Editor) History() []string {
	return e.history
}

// Index returns the history cursor.
func (e *Editor) Index() int {
	return e.index
}
