// Package services defines the shared error taxonomy for shoebox components
// and hosts adapters for external collaborators such as exiftool.
//
// Errors are tagged with sentinel markers via Wrap so callers can classify
// failures with errors.Is without parsing messages.
package services
