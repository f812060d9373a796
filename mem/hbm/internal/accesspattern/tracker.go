// Package accesspattern records which channels touch the same bank, column,
// and row coordinates, and classifies the result.
package accesspattern

import (
	"slices"

	"github.com/google/btree"
)

// Key identifies a set of cells that can be reached from any channel.
type Key struct {
	BankProduct int
	Column      int
	Row         int
}

func (k Key) less(o Key) bool {
	if k.BankProduct != o.BankProduct {
		return k.BankProduct < o.BankProduct
	}

	if k.Column != o.Column {
		return k.Column < o.Column
	}

	return k.Row < o.Row
}

// Record is a key and the channels that accessed it since the last flush,
// in access order.
type Record struct {
	Key      Key
	Channels []int
}

// keyState is what the summary needs to know about a key. It outlives the
// flushes of the table.
type keyState struct {
	accesses int
	channels []int
}

func (s *keyState) add(channel int) {
	s.accesses++

	if !slices.Contains(s.channels, channel) {
		s.channels = append(s.channels, channel)
	}
}

func (s *keyState) bucket() Bucket {
	return bucketOf(s.accesses, len(s.channels))
}

// Tracker maintains the access count table. The table holds the full
// channel list of each key and can be bounded by a number of keys and
// flushed. The summary is kept separately per key, so a key accessed both
// before and after a flush, or dropped from a full table, is still
// classified once over all of its accesses.
type Tracker struct {
	table   *btree.BTreeG[*Record]
	states  map[Key]*keyState
	maxKeys int
	dropped uint64
}

// NewTracker creates a tracker. A maxKeys of 0 lets the table grow without
// limit.
func NewTracker(maxKeys int) *Tracker {
	return &Tracker{
		table: btree.NewG(32, func(a, b *Record) bool {
			return a.Key.less(b.Key)
		}),
		states:  make(map[Key]*keyState),
		maxKeys: maxKeys,
	}
}

// Record appends the channel to the list of the key.
func (t *Tracker) Record(key Key, channel int) {
	t.state(key).add(channel)

	r, found := t.table.Get(&Record{Key: key})
	if found {
		r.Channels = append(r.Channels, channel)
		return
	}

	if t.Full() {
		t.dropped++
		return
	}

	t.table.ReplaceOrInsert(&Record{Key: key, Channels: []int{channel}})
}

func (t *Tracker) state(key Key) *keyState {
	s, found := t.states[key]
	if !found {
		s = &keyState{}
		t.states[key] = s
	}

	return s
}

// Len returns the number of keys currently in the table.
func (t *Tracker) Len() int {
	return t.table.Len()
}

// Full returns true if a new key would be dropped from the table.
func (t *Tracker) Full() bool {
	return t.maxKeys > 0 && t.table.Len() >= t.maxKeys
}

// Dropped returns the number of accesses to new keys that the table did not
// keep because it was full. They still count in the summary.
func (t *Tracker) Dropped() uint64 {
	return t.dropped
}

// Flush removes all the records from the table and returns them in key
// order.
func (t *Tracker) Flush() []Record {
	records := make([]Record, 0, t.table.Len())

	t.table.Ascend(func(r *Record) bool {
		records = append(records, *r)
		return true
	})

	t.table.Clear(false)

	return records
}

// Summary classifies every key recorded since the tracker was created.
func (t *Tracker) Summary() Summary {
	var s Summary

	for _, state := range t.states {
		s.add(state.bucket())
	}

	return s
}
