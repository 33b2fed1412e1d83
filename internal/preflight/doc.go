// Package preflight provides readiness checks that run before a scan starts.
// A scan that begins against an unwritable or full destination, or without
// the metadata binary installed, would abort mid-walk; these checks surface
// the problem up front instead.
package preflight
