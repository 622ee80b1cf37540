// Package domain contains the core types for Position Description
// documents: sections, the ordered document mapping, canonical section
// order, edit history records, and the structured results returned by
// the AI collaborators.
//
// The domain layer has no dependencies on adapters or external
// libraries. All parsing and serialisation logic lives in the leaf
// transform packages; this package only defines the shapes they share.
package domain
