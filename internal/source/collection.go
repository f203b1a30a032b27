package source

// Collection is the host pipeline's ordered file collection. The sorting
// stage reads it, clears it and repopulates it through Add.
type Collection interface {
	Files() []File
	Clear()
	Add(f File)
}

// MemCollection is an ordered in-memory Collection.
type MemCollection struct {
	files []File
}

// NewCollection creates a collection holding files in the given order.
func NewCollection(files ...File) *MemCollection {
	c := &MemCollection{}
	for _, f := range files {
		c.Add(f)
	}
	return c
}

// Files returns a copy of the current file order.
func (c *MemCollection) Files() []File {
	out := make([]File, len(c.files))
	copy(out, c.files)
	return out
}

// Clear removes every file.
func (c *MemCollection) Clear() {
	c.files = nil
}

// Add appends a file.
func (c *MemCollection) Add(f File) {
	c.files = append(c.files, f)
}

// Len returns the number of files.
func (c *MemCollection) Len() int {
	return len(c.files)
}
