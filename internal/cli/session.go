package cli

const defaultHistoryMaxEntries = 50

// CommandHistory keeps the most recent REPL lines.
type CommandHistory struct {
	entries    []string
	maxEntries int
}

func NewCommandHistory(maxEntries int) *CommandHistory {
	if maxEntries <= 0 {
		maxEntries = defaultHistoryMaxEntries
	}
	return &CommandHistory{maxEntries: maxEntries}
}

func (h *CommandHistory) Append(line string) {
	h.entries = append(h.entries, line)
	if len(h.entries) > h.maxEntries {
		h.entries = trimByCount(h.entries, h.maxEntries)
	}
}

func (h *CommandHistory) Entries() []string {
	if len(h.entries) == 0 {
		return nil
	}
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *CommandHistory) Clear() {
	h.entries = nil
}

func trimByCount(entries []string, max int) []string {
	if len(entries) <= max {
		return entries
	}
	if max <= 0 {
		return nil
	}
	trimmed := make([]string, max)
	copy(trimmed, entries[len(entries)-max:])
	return trimmed
}
