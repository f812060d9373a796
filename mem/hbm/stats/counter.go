// Package stats holds the counters of the memory system and derives the
// final report from them.
package stats

import "fmt"

// Scalar is a named counter that can only grow.
type Scalar struct {
	Name      string
	Desc      string
	Precision int

	value float64
}

// NewScalar creates a counter that starts at 0.
func NewScalar(name, desc string, precision int) *Scalar {
	return &Scalar{Name: name, Desc: desc, Precision: precision}
}

// Inc adds 1 to the counter.
func (s *Scalar) Inc() {
	s.value++
}

// Add adds a non-negative amount to the counter.
func (s *Scalar) Add(v float64) {
	if v < 0 {
		panic(fmt.Sprintf("counter %s cannot decrease", s.Name))
	}

	s.value += v
}

// Value returns the current value.
func (s *Scalar) Value() float64 {
	return s.value
}

// Vector is a group of counters indexed by core or channel.
type Vector struct {
	Name      string
	Desc      string
	Precision int

	values []float64
}

// NewVector creates a vector of n counters.
func NewVector(name, desc string, precision, n int) *Vector {
	return &Vector{
		Name:      name,
		Desc:      desc,
		Precision: precision,
		values:    make([]float64, n),
	}
}

// Inc adds 1 to the i-th counter.
func (v *Vector) Inc(i int) {
	v.Add(i, 1)
}

// Add adds a non-negative amount to the i-th counter.
func (v *Vector) Add(i int, amount float64) {
	if amount < 0 {
		panic(fmt.Sprintf("counter %s[%d] cannot decrease", v.Name, i))
	}

	v.values[i] += amount
}

// At returns the value of the i-th counter.
func (v *Vector) At(i int) float64 {
	return v.values[i]
}

// Len returns the number of counters.
func (v *Vector) Len() int {
	return len(v.values)
}

// Total returns the sum of all the counters.
func (v *Vector) Total() float64 {
	total := 0.0
	for _, value := range v.values {
		total += value
	}

	return total
}
