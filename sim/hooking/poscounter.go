package hooking

// PosCounter is a hook that counts how many times each position is reached.
type PosCounter struct {
	names  []string
	counts map[string]uint64
}

// NewPosCounter creates a PosCounter.
func NewPosCounter() *PosCounter {
	return &PosCounter{counts: make(map[string]uint64)}
}

// Func counts the position of the context.
func (c *PosCounter) Func(ctx HookCtx) {
	name := ctx.Pos.Name

	if _, found := c.counts[name]; !found {
		c.names = append(c.names, name)
	}

	c.counts[name]++
}

// Names returns the positions reached, in the order first reached.
func (c *PosCounter) Names() []string {
	return c.names
}

// Count returns the number of times the position is reached.
func (c *PosCounter) Count(pos *HookPos) uint64 {
	return c.CountName(pos.Name)
}

// CountName returns the number of times the position with the name is
// reached.
func (c *PosCounter) CountName(name string) uint64 {
	return c.counts[name]
}
