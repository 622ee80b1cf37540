package domain

// Section is a named unit of a Position Description document.
type Section struct {
	// Title is the canonical header label, e.g. "HEADER" or
	// "Factor 3 - Guidelines Level 3-2, 275 Points".
	Title string

	// Content is the body text belonging to the header. It never contains
	// the header markup itself. Summary sections (Total Points, Final
	// Grade, Grade Range) carry their value embedded in the title and
	// typically have empty content.
	Content string
}

// Document is an ordered mapping from section title to Section.
// Titles are unique within a document; setting an existing title
// overwrites its content but keeps its original position, matching
// insertion-order mapping semantics.
type Document struct {
	order    []string
	sections map[string]*Section
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		sections: make(map[string]*Section),
	}
}

// Set inserts or overwrites the section for title. A new title is
// appended at the end; an existing title keeps its position.
func (d *Document) Set(title, content string) {
	if s, ok := d.sections[title]; ok {
		s.Content = content
		return
	}
	d.order = append(d.order, title)
	d.sections[title] = &Section{Title: title, Content: content}
}

// Get returns the section for title, or nil if absent.
func (d *Document) Get(title string) *Section {
	return d.sections[title]
}

// Has reports whether a section with the exact title exists.
func (d *Document) Has(title string) bool {
	_, ok := d.sections[title]
	return ok
}

// Delete removes the section for title. It is a no-op if absent.
func (d *Document) Delete(title string) {
	if _, ok := d.sections[title]; !ok {
		return
	}
	delete(d.sections, title)
	for i, t := range d.order {
		if t == title {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Rename changes a section's title in place, preserving its position.
// Factor titles embed level and points, so a recompute renames sections.
// If the new title already exists elsewhere, the old entry is removed and
// the existing entry receives the section's content.
func (d *Document) Rename(oldTitle, newTitle string) error {
	s, ok := d.sections[oldTitle]
	if !ok {
		return ErrSectionNotFound
	}
	if oldTitle == newTitle {
		return nil
	}
	if _, exists := d.sections[newTitle]; exists {
		content := s.Content
		d.Delete(oldTitle)
		d.sections[newTitle].Content = content
		return nil
	}
	delete(d.sections, oldTitle)
	s.Title = newTitle
	d.sections[newTitle] = s
	for i, t := range d.order {
		if t == oldTitle {
			d.order[i] = newTitle
			break
		}
	}
	return nil
}

// Titles returns the section titles in insertion order.
// The returned slice is a copy.
func (d *Document) Titles() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Sections returns the sections in insertion order.
func (d *Document) Sections() []Section {
	out := make([]Section, 0, len(d.order))
	for _, t := range d.order {
		out = append(out, *d.sections[t])
	}
	return out
}

// Len returns the number of sections.
func (d *Document) Len() int {
	return len(d.order)
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := NewDocument()
	for _, t := range d.order {
		c.Set(t, d.sections[t].Content)
	}
	return c
}

// Equal reports whether two documents hold the same titles in the same
// order with the same content.
func (d *Document) Equal(other *Document) bool {
	if other == nil || len(d.order) != len(other.order) {
		return false
	}
	for i, t := range d.order {
		if other.order[i] != t {
			return false
		}
		if d.sections[t].Content != other.sections[t].Content {
			return false
		}
	}
	return true
}
