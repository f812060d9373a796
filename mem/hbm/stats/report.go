package stats

import (
	"fmt"
	"io"
)

// Stat is one line of the final report.
type Stat struct {
	Name      string
	Desc      string
	Value     float64
	Precision int
}

// Report is the ordered list of statistics produced at the end of a run.
type Report []Stat

// AddValue appends a statistic.
func (r *Report) AddValue(name, desc string, value float64, precision int) {
	*r = append(*r, Stat{
		Name:      name,
		Desc:      desc,
		Value:     value,
		Precision: precision,
	})
}

// AddScalar appends the value of a counter.
func (r *Report) AddScalar(s *Scalar) {
	r.AddValue(s.Name, s.Desc, s.Value(), s.Precision)
}

// AddVector appends one statistic per element of a vector, named
// name[index].
func (r *Report) AddVector(v *Vector) {
	for i := 0; i < v.Len(); i++ {
		r.AddValue(fmt.Sprintf("%s[%d]", v.Name, i), v.Desc, v.At(i),
			v.Precision)
	}
}

// Get finds a statistic by name.
func (r Report) Get(name string) (float64, bool) {
	for _, s := range r {
		if s.Name == name {
			return s.Value, true
		}
	}

	return 0, false
}

// WriteTo prints the report, one statistic per line.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	total := int64(0)

	for _, s := range r {
		n, err := fmt.Fprintf(w, "%-40s %20.*f # %s\n",
			s.Name, s.Precision, s.Value, s.Desc)
		total += int64(n)

		if err != nil {
			return total, err
		}
	}

	return total, nil
}
