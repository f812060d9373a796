package accesspattern

// Bucket is the class of an access list.
type Bucket int

// The four disjoint classes of access lists.
const (
	// SingleAccess lists have exactly one access.
	SingleAccess Bucket = iota

	// SameChannel lists have several accesses, all from one channel.
	SameChannel

	// DistinctChannels lists have several accesses from different channels,
	// none of them repeated.
	DistinctChannels

	// RepeatedChannels lists have several accesses from different channels,
	// some of them repeated.
	RepeatedChannels

	numBuckets
)

// Summary counts the number of keys in each bucket.
type Summary struct {
	Counts [numBuckets]uint64
}

// Keys returns the total number of keys classified.
func (s Summary) Keys() uint64 {
	total := uint64(0)
	for _, c := range s.Counts {
		total += c
	}

	return total
}

// Percent returns the share of keys in the bucket, from 0 to 100. An empty
// summary reports 0 for every bucket.
func (s Summary) Percent(b Bucket) float64 {
	total := s.Keys()
	if total == 0 {
		return 0
	}

	return float64(s.Counts[b]) * 100 / float64(total)
}

func (s *Summary) add(b Bucket) {
	s.Counts[b]++
}

// bucketOf classifies a key from the number of its accesses and the number
// of distinct channels among them.
func bucketOf(accesses, channels int) Bucket {
	switch {
	case accesses == 1:
		return SingleAccess
	case channels == 1:
		return SameChannel
	case channels == accesses:
		return DistinctChannels
	default:
		return RepeatedChannels
	}
}
