package lines

// Seen is the set of lines already emitted by dedup mode.
type Seen struct {
	m     map[string]struct{}
	bytes int64
}

// NewSeen returns an empty set.
func NewSeen() *Seen {
	return &Seen{m: make(map[string]struct{})}
}

// Insert adds line and reports whether it was not already present. line
// is copied only when it is new.
func (s *Seen) Insert(line []byte) bool {
	if _, ok := s.m[string(line)]; ok {
		return false
	}
	s.m[string(line)] = struct{}{}
	s.bytes += int64(len(line))
	return true
}

// Len returns the number of distinct lines.
func (s *Seen) Len() int { return len(s.m) }

// Bytes returns the total size of the distinct lines held.
func (s *Seen) Bytes() int64 { return s.bytes }
