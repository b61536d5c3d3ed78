package lsm

import "github.com/lsmkv/lsmcore/memtable"

// State is the immutable snapshot an Inner swaps in whole: one writable
// memtable plus the frozen ones behind it, newest first. Readers hold a
// State value for the duration of an operation so a concurrent freeze can
// never mutate what they see mid-read.
type State struct {
	MemTable     *memtable.MemTable
	ImmMemtables []*memtable.MemTable
}

func newState(mt *memtable.MemTable) *State {
	return &State{MemTable: mt}
}

// withFrozen returns a new State that freezes the current memtable behind
// next, pushing it to the front of ImmMemtables. The receiver is left
// untouched, so any reader still holding it keeps seeing the old shape.
func (s *State) withFrozen(next *memtable.MemTable) *State {
	imm := make([]*memtable.MemTable, 0, len(s.ImmMemtables)+1)
	imm = append(imm, s.MemTable)
	imm = append(imm, s.ImmMemtables...)
	return &State{MemTable: next, ImmMemtables: imm}
}
