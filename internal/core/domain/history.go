package domain

import "time"

// EditRecord is one entry in a section's append-only edit history.
type EditRecord struct {
	// Content is the section content at the time of the save.
	Content string

	// Header is the section title at the time of the save. Factor titles
	// change when levels/points are recomputed, so the header is captured
	// with each record rather than implied by the map key.
	Header string

	// Timestamp is when the save happened.
	Timestamp time.Time
}
