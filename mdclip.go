// Package mdclip extracts the readable article from a web page and converts
// it to Markdown for pasting elsewhere.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package mdclip
