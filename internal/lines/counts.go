package lines

// Entry is one distinct line and the number of times it has been seen.
type Entry struct {
	Line  string
	Count int
}

// Counts maps lines to occurrence counts and iterates in order of first
// appearance. Lookups go through index; entries holds the order.
type Counts struct {
	index   map[string]int
	entries []Entry
	total   int
	bytes   int64
}

// NewCounts returns an empty map.
func NewCounts() *Counts {
	return &Counts{index: make(map[string]int)}
}

// Add records one occurrence of line and returns its updated count. line
// is copied only the first time it is seen.
func (c *Counts) Add(line []byte) int {
	c.total++
	if i, ok := c.index[string(line)]; ok {
		c.entries[i].Count++
		return c.entries[i].Count
	}
	key := string(line)
	c.index[key] = len(c.entries)
	c.entries = append(c.entries, Entry{Line: key, Count: 1})
	c.bytes += int64(len(key))
	return 1
}

// Len returns the number of distinct lines.
func (c *Counts) Len() int { return len(c.entries) }

// Total returns the number of lines added, i.e. the sum of all counts.
func (c *Counts) Total() int { return c.total }

// Bytes returns the total size of the distinct lines held.
func (c *Counts) Bytes() int64 { return c.bytes }

// Entries returns the entries in first-appearance order. The slice is
// owned by c and must not be modified.
func (c *Counts) Entries() []Entry { return c.entries }
