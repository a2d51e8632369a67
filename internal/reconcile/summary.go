package reconcile

import "fmt"

// Summary is the exception count panel shown under the grid.
type Summary struct {
	Added   int
	Removed int
}

func (e *Engine) Summary() Summary {
	return Summary{Added: e.ToAdd.Len(), Removed: e.ToDelete.Len()}
}

// AddedText is empty when nothing was added.
func (s Summary) AddedText() string {
	if s.Added == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s will be added", s.Added, pluralise("day", s.Added))
}

func (s Summary) RemovedText() string {
	if s.Removed == 0 {
		return ""
	}
	return fmt.Sprintf("%d %s will be removed", s.Removed, pluralise("day", s.Removed))
}

// ShowReset reports whether there is anything for reset to undo.
func (s Summary) ShowReset() bool {
	return s.Added > 0 || s.Removed > 0
}

func pluralise(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
