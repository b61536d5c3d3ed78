// Package lsm implements the in-memory write path of a log-structured
// merge-tree key-value engine: a single active memtable, a chain of
// frozen memtables behind it, and the atomic freeze-swap that moves one to
// the other once it grows past a configured size. Durable storage (sorted
// table files, a write-ahead log, compaction, and crash recovery) is out of
// scope for this core; Inner models only the part of the engine that lives
// in memory between those boundaries.
package lsm
