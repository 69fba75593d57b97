package dice

// Reduce lowers the dice portion of the cost by up to n dice.
// Unaligned dice are removed first, then elemental, then aligned.
// It returns the reduced cost and how much of n was used.
func (c Cost) Reduce(n uint8) (Cost, uint8) {
	used := uint8(0)
	take := func(field *uint8) {
		d := min(*field, n-used)
		*field -= d
		used += d
	}
	take(&c.Unaligned)
	take(&c.Elemental)
	take(&c.Aligned)
	return c, used
}

// ReduceElemental lowers only the elemental portion by up to n dice.
func (c Cost) ReduceElemental(n uint8) (Cost, uint8) {
	d := min(c.Elemental, n)
	c.Elemental -= d
	return c, d
}

// ReduceEnergy lowers the energy portion by up to n.
func (c Cost) ReduceEnergy(n uint8) (Cost, uint8) {
	d := min(c.Energy, n)
	c.Energy -= d
	return c, d
}
