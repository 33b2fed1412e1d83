// Package catalog persists ingested media records, the device registry, and
// settings in SQLite.
//
// The Store owns the database connection and an flock guarding exclusive
// process ownership. Writes are buffered in an open transaction and committed
// every flush_interval successful media insertions (and on Flush), bounding
// durability lag without forcing a sync per file. Fingerprint and canonical
// path carry UNIQUE constraints; both are pre-checked by callers, and the
// constraints remain as a defense against logic defects.
//
// Treat this package as the single source of truth for catalog semantics;
// schema changes go through a new file under migrations/.
package catalog
