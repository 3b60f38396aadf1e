package output

// Transcript is the append-only list of blocks shown to the user.
type Transcript struct {
	blocks []Block
}

// Append adds blocks to the end of the transcript.
func (t *Transcript) Append(blocks ...Block) {
	t.blocks = append(t.blocks, blocks...)
}

// Clear removes every block.
func (t *Transcript) Clear() {
	t.blocks = nil
}

// Blocks returns the blocks in display order.
func (t *Transcript) Blocks() []Block {
	return t.blocks
}

// Len returns the number of blocks.
func (t *Transcript) Len() int {
	return len(t.blocks)
}

// Last returns the newest block that is not a command echo.
func (t *Transcript) Last() (Block, bool) {
	for i := len(t.blocks) - 1; i >= 0; i-- {
		if t.blocks[i].Kind != KindEcho {
			return t.blocks[i], true
		}
	}
	return Block{}, false
}

// Result is what one executed command line contributes to the transcript.
type Result struct {
	Blocks  []Block
	Cleared bool // the command asked for the transcript to be emptied
}

// HasError reports whether any block is an error block.
func (r Result) HasError() bool {
	for _, b := range r.Blocks {
		if b.Kind == KindError {
			return true
		}
	}
	return false
}

// Apply appends the result's blocks and then honours a clear request.
func (t *Transcript) Apply(r Result) {
	t.Append(r.Blocks...)
	if r.Cleared {
		t.Clear()
	}
}
