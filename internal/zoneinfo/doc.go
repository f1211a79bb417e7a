// Package zoneinfo resolves IANA time zone identifiers against the host time zone
// database and keeps a memoized catalog of every zone the host knows about.
//
// Resolution always reads the database directly so offsets and abbreviations are
// never stale. Enumeration walks the first zoneinfo directory found on the host and
// falls back to an embedded identifier list (data/zones.txt) paired with the tzdata
// compiled into the binary.
package zoneinfo
