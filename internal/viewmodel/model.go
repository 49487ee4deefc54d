package viewmodel

import (
	"sync"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
)

// State is the lifecycle stage of a Model.
type State int

const (
	// Empty means no table has ever been loaded.
	Empty State = iota
	// Loaded means a table is present. A Model never returns to Empty.
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "empty"
}

// Generation numbers uploads in the order they were started.
type Generation uint64

// Model owns one table together with its filter and sort state.
//
// Uploads are numbered by BeginUpload; Complete installs a table only for
// the newest generation, so a slow upload that finishes after a newer one
// can never overwrite it.
type Model struct {
	mu sync.RWMutex

	table  *sheet.Table
	filter string
	sort   SortDirection

	issued    Generation // last generation handed out
	installed Generation // generation of the table currently shown
}

// NewModel returns an empty model with the default filter and direction.
func NewModel() *Model {
	return &Model{
		filter: FilterAll,
		sort:   Ascending,
	}
}

// BeginUpload reserves the next generation for an upload that is starting.
func (m *Model) BeginUpload() Generation {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.issued++
	return m.issued
}

// Complete installs t for generation gen. It returns false, leaving the
// model untouched, when a newer upload has started since gen was issued.
// Installing a table resets the filter to "all" and the sort to ascending.
func (m *Model) Complete(gen Generation, t *sheet.Table) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.issued || gen <= m.installed || t == nil {
		return false
	}

	m.table = t
	m.installed = gen
	m.filter = FilterAll
	m.sort = Ascending
	return true
}

// Latest returns the most recently issued generation.
func (m *Model) Latest() Generation {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.issued
}

// State reports whether a table has been loaded.
func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.table == nil {
		return Empty
	}
	return Loaded
}

// Table returns the current table snapshot, or nil.
func (m *Model) Table() *sheet.Table {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.table
}

// SetFilter selects a fund value, or FilterAll. An empty value means FilterAll.
func (m *Model) SetFilter(value string) {
	if value == "" {
		value = FilterAll
	}

	m.mu.Lock()
	m.filter = value
	m.mu.Unlock()
}

// Filter returns the selected fund value.
func (m *Model) Filter() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

// SetSort sets the direction; invalid values are ignored.
func (m *Model) SetSort(dir SortDirection) {
	if !dir.Valid() {
		return
	}

	m.mu.Lock()
	m.sort = dir
	m.mu.Unlock()
}

// ToggleSort flips the direction and returns the new one.
func (m *Model) ToggleSort() SortDirection {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sort = m.sort.Toggle()
	return m.sort
}

// Sort returns the current direction.
func (m *Model) Sort() SortDirection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sort
}

// View builds the render-ready view from the current state.
func (m *Model) View() View {
	m.mu.RLock()
	t, filter, dir := m.table, m.filter, m.sort
	m.mu.RUnlock()

	return Build(t, filter, dir)
}

// ViewWith builds a view of the current table with explicit parameters,
// leaving the model's own filter and sort unchanged.
func (m *Model) ViewWith(filter string, dir SortDirection) View {
	return Build(m.Table(), filter, dir)
}
