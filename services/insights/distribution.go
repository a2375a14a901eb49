package insights

import "fmt"

// Bin is one contiguous bucket of a numeric distribution. Start is
// inclusive; End is exclusive except for the final bin, which keeps
// the maximum value in range.
type Bin struct {
	Start int64
	End   int64
	Count int64
}

func (b Bin) Label() string {
	return fmt.Sprintf("%d-%d", b.Start, b.End)
}

const defaultBinCount = 15

// Distribution buckets values into at most nbins contiguous bins. The
// bin width is the ceiling of range/nbins but never below 1, edges
// start at the minimum and step by the width, and the final edge is
// extended past the maximum when the steps fall short of covering it.
func Distribution(values []int64, nbins int) []Bin {
	if nbins <= 0 {
		nbins = defaultBinCount
	}
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return []Bin{{Start: values[0], End: values[0], Count: 1}}
	}

	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if minVal == maxVal {
		return []Bin{{Start: minVal, End: maxVal, Count: int64(len(values))}}
	}

	width := (maxVal - minVal + int64(nbins) - 1) / int64(nbins)
	if width < 1 {
		width = 1
	}

	var edges []int64
	for e := minVal; e < maxVal; e += width {
		edges = append(edges, e)
	}
	if edges[len(edges)-1] < maxVal {
		edges = append(edges, edges[len(edges)-1]+width)
	}

	bins := make([]Bin, len(edges)-1)
	for i := range bins {
		bins[i] = Bin{Start: edges[i], End: edges[i+1]}
	}
	for _, v := range values {
		i := (v - minVal) / width
		if i >= int64(len(bins)) {
			i = int64(len(bins)) - 1
		}
		bins[i].Count++
	}

	return bins
}
