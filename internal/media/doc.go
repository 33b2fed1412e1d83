// Package media models one scanned file as a descriptor that derives its
// identifying properties on demand: extension kind, content fingerprint, byte
// size, device make and model, capture timestamp, and the canonical relative
// path it belongs at once the device short name is known. Each derivation is
// computed at most once per descriptor; descriptors live for the processing of
// a single file and are then discarded.
package media
