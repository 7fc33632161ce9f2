// Package tape builds the structural index the rest of the pipeline
// calls the "tape": an ordered record of where each newline run starts
// and how many newlines it folds together, so that any byte offset in
// the input can be turned into a {line, column} pair by consulting a
// running newline count rather than re-scanning from the start of the
// file (spec.md §4.3, §7).
package tape

// Kind names the structural role of an Entry. Only Delimiter entries
// are produced by Build today — the lexer (internal/lex) resolves
// CONTIGUOUS/QUOTED/Open/Close boundaries itself against the block
// scanner's masks — but the full vocabulary is named here because it
// is the one spec.md §3 describes for the tape as a whole, and a
// caller computing a position does not care which kind of boundary
// produced a given Entry.
type Kind uint8

const (
	Contiguous Kind = iota
	Quoted
	QuotedEnd
	Delimiter
	Open
	Close
	EOF
)

// Entry is one position on the tape. Data is the byte offset where a
// newline run starts; Newlines is how many consecutive newline bytes
// that run folds together (a blank line between records yields
// Newlines == 2, not two separate entries).
type Entry struct {
	Data     int
	Kind     Kind
	Newlines int
}

// Tape is the ordered newline index over one input buffer.
type Tape struct {
	entries []Entry
}

// Build scans buf once and records every run of one or more
// consecutive '\n' bytes as a single Delimiter entry, in ascending
// offset order.
func Build(buf []byte) *Tape {
	t := &Tape{}
	i := 0
	for i < len(buf) {
		if buf[i] != '\n' {
			i++
			continue
		}
		start := i
		count := 0
		for i < len(buf) && buf[i] == '\n' {
			count++
			i++
		}
		t.entries = append(t.entries, Entry{Data: start, Kind: Delimiter, Newlines: count})
	}
	return t
}

// Terminate appends the double end-of-file sentinel required by
// invariant I3: the last two entries both point at the terminator
// byte, so a walker may always read head[0] and head[1] without a
// bounds check. Build itself never calls this, and neither does
// internal/lex, which uses the tape only through LineAt and ColumnAt.
func (t *Tape) Terminate(terminatorOffset int) {
	t.entries = append(t.entries, Entry{Data: terminatorOffset, Kind: EOF}, Entry{Data: terminatorOffset, Kind: EOF})
}

// Len returns the number of entries on the tape.
func (t *Tape) Len() int { return len(t.entries) }

// At returns the entry at index i.
func (t *Tape) At(i int) Entry { return t.entries[i] }

// LineAt returns the 1-based line number containing offset: one more
// than the total newline count of every run that starts at or before
// offset. An offset on any '\n' of a run (including its first) counts
// the whole run, so it is attributed the line that follows the run;
// for offsets outside newline runs the result is the containing line.
func (t *Tape) LineAt(offset int) int {
	line := 1
	for _, e := range t.entries {
		if e.Kind != Delimiter || e.Data > offset {
			break
		}
		line += e.Newlines
	}
	return line
}

// ColumnAt returns the 1-based column of offset within its line: the
// distance from the end of the last newline run at or before offset.
func (t *Tape) ColumnAt(offset int) int {
	last := -1
	for _, e := range t.entries {
		if e.Kind != Delimiter || e.Data > offset {
			break
		}
		last = e.Data + e.Newlines - 1
	}
	return offset - last
}
