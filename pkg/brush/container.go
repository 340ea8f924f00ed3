package brush

// Container is an indexed collection of brush slots. Generators write into
// slots by index; only the owner resizes the container.
type Container struct {
	Meshes []Mesh
}

// Len returns the number of slots.
func (c *Container) Len() int {
	return len(c.Meshes)
}

// EnsureSize grows the container to at least n slots.
func (c *Container) EnsureSize(n int) {
	if n > len(c.Meshes) {
		c.Resize(n)
	}
}

// Resize sets the slot count to exactly n, keeping existing slots below n.
func (c *Container) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(c.Meshes) {
		old := len(c.Meshes)
		c.Meshes = c.Meshes[:n]
		for i := old; i < n; i++ {
			c.Meshes[i] = Mesh{}
		}
		return
	}
	grown := make([]Mesh, n)
	copy(grown, c.Meshes)
	c.Meshes = grown
}

// At returns the slot at index i.
func (c *Container) At(i int) *Mesh {
	return &c.Meshes[i]
}

// Filled returns how many slots hold geometry.
func (c *Container) Filled() int {
	count := 0
	for i := range c.Meshes {
		if !c.Meshes[i].Empty() {
			count++
		}
	}
	return count
}
