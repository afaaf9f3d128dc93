// Package classify implements classifiers for functional data.
package classify

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/gofda/gofda/depth"
	"github.com/gofda/gofda/fdata"
)

var (
	// ErrNotFitted indicates prediction before a successful Fit.
	ErrNotFitted = errors.New("classify: classifier has not been fitted")
	// ErrLabelCount indicates a label slice whose length differs from
	// the sample count.
	ErrLabelCount = errors.New("classify: one label per sample is required")
	// ErrNoClasses indicates an empty training set.
	ErrNoClasses = errors.New("classify: training data must contain at least one class")
)

// MaximumDepth classifies curves to the class within which they are
// deepest: one depth functional is fitted per class and test samples are
// assigned by argmax of the class depths.
type MaximumDepth struct {
	classes []int
	depths  []*depth.IntegratedDepth
}

func NewMaximumDepth() *MaximumDepth {
	return &MaximumDepth{}
}

// Fit fits one integrated-depth functional per distinct label in y.
func (c *MaximumDepth) Fit(x *fdata.Grid, y []int) error {
	if len(y) != x.NSamples() {
		return fmt.Errorf("%w: %d labels, %d samples", ErrLabelCount, len(y), x.NSamples())
	}
	if len(y) == 0 {
		return ErrNoClasses
	}
	classes := uniqueSorted(y)
	depths := make([]*depth.IntegratedDepth, len(classes))
	for ci, class := range classes {
		sub, err := selectRows(x, y, class)
		if err != nil {
			return err
		}
		d := depth.NewIntegratedDepth()
		if err := d.Fit(sub); err != nil {
			return err
		}
		depths[ci] = d
	}
	c.classes = classes
	c.depths = depths
	return nil
}

// Predict returns the label of the deepest class for each sample of x.
func (c *MaximumDepth) Predict(x *fdata.Grid) ([]int, error) {
	if c.depths == nil {
		return nil, ErrNotFitted
	}
	perClass := make([][]float64, len(c.depths))
	for ci, d := range c.depths {
		ds, err := d.Depths(x)
		if err != nil {
			return nil, err
		}
		perClass[ci] = ds
	}
	out := make([]int, x.NSamples())
	scores := make([]float64, len(c.depths))
	for i := range out {
		for ci := range c.depths {
			scores[ci] = perClass[ci][i]
		}
		out[i] = c.classes[floats.MaxIdx(scores)]
	}
	return out, nil
}

// Classes returns the distinct labels seen at fit time, ascending.
func (c *MaximumDepth) Classes() ([]int, error) {
	if c.depths == nil {
		return nil, ErrNotFitted
	}
	return c.classes, nil
}

func uniqueSorted(y []int) []int {
	seen := make(map[int]struct{}, len(y))
	out := make([]int, 0, len(y))
	for _, v := range y {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

// selectRows extracts the samples of x labeled class.
func selectRows(x *fdata.Grid, y []int, class int) (*fdata.Grid, error) {
	p := x.NPoints()
	rows := make([]int, 0, len(y))
	for i, v := range y {
		if v == class {
			rows = append(rows, i)
		}
	}
	data := mat.NewDense(len(rows), p, nil)
	for r, i := range rows {
		for k := 0; k < p; k++ {
			data.Set(r, k, x.DataMatrix().At(i, k))
		}
	}
	return x.CopyWithData(data)
}
