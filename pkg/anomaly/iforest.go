package anomaly

import (
	"math"
	"math/rand"
	"sort"

	"github.com/activecm/cybershield/util"
)

const (
	// eulerGamma is the Euler-Mascheroni constant used to approximate
	// harmonic numbers
	eulerGamma = 0.5772156649015329

	//DefaultTrees is the number of isolation trees in the forest
	DefaultTrees = 100
	//DefaultMaxSamples caps the subsample each tree is grown from
	DefaultMaxSamples = 256
	//DefaultContamination is the expected share of outliers
	DefaultContamination = 0.2
	//DefaultSeed seeds the forest's random source
	DefaultSeed int64 = 42
)

type (
	//IsolationForest scores points by how few random axis aligned splits
	//it takes to separate them from the rest of the sample. Points which
	//are isolated quickly are outliers.
	IsolationForest struct {
		Trees         int
		MaxSamples    int
		Contamination float64
		Seed          int64
	}

	// isoNode is a node of an isolation tree. Leaves have no children
	// and record how many sample points reached them.
	isoNode struct {
		threshold float64
		left      *isoNode
		right     *isoNode
		size      int
	}
)

//NewIsolationForest returns a forest using the default parameters
func NewIsolationForest() *IsolationForest {
	return &IsolationForest{
		Trees:         DefaultTrees,
		MaxSamples:    DefaultMaxSamples,
		Contamination: DefaultContamination,
		Seed:          DefaultSeed,
	}
}

//Score fits a forest to the values and labels the share of values given
//by Contamination with the lowest scores as Suspicious. The values are
//sorted before fitting, so the labels only depend on the multiset of
//values. Fewer than two values are always Normal.
func (f *IsolationForest) Score(values []float64) []Label {
	labels := make([]Label, len(values))
	for i := range labels {
		labels[i] = Normal
	}
	if len(values) < 2 {
		return labels
	}

	scores := f.ScoreSamples(values)
	offset := percentile(scores, 100*f.Contamination)

	for i, score := range scores {
		if score < offset {
			labels[i] = Suspicious
		}
	}
	return labels
}

//ScoreSamples returns the negated anomaly score of every value.
//Lower scores are more anomalous.
func (f *IsolationForest) ScoreSamples(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	trees := f.fit(sorted)
	sampleSize := f.sampleSize(len(sorted))
	norm := averagePathLength(sampleSize)

	scores := make([]float64, len(values))
	for i, value := range values {
		depth := 0.0
		for _, tree := range trees {
			depth += tree.pathLength(value, 0)
		}
		depth /= float64(len(trees))

		if norm == 0 {
			scores[i] = -0.5
			continue
		}
		scores[i] = -math.Pow(2, -depth/norm)
	}
	return scores
}

// sampleSize clips MaxSamples to the number of available points
func (f *IsolationForest) sampleSize(n int) int {
	return util.Min(util.Max(f.MaxSamples, 1), n)
}

// fit grows the forest over the sorted values
func (f *IsolationForest) fit(sorted []float64) []*isoNode {
	rng := rand.New(rand.NewSource(f.Seed))

	sampleSize := f.sampleSize(len(sorted))
	maxDepth := int(math.Ceil(math.Log2(float64(util.Max(sampleSize, 2)))))

	trees := make([]*isoNode, util.Max(f.Trees, 1))
	for i := range trees {
		// each tree draws from its own source so that the forest is
		// reproducible tree by tree
		treeRng := rand.New(rand.NewSource(rng.Int63()))

		sample := make([]float64, sampleSize)
		for j, idx := range treeRng.Perm(len(sorted))[:sampleSize] {
			sample[j] = sorted[idx]
		}
		trees[i] = growTree(treeRng, sample, 0, maxDepth)
	}
	return trees
}

// growTree recursively partitions the sample on uniform random thresholds
// until a point is isolated, every point is equal, or the depth limit hits
func growTree(rng *rand.Rand, sample []float64, depth int, maxDepth int) *isoNode {
	if depth >= maxDepth || len(sample) <= 1 {
		return &isoNode{size: len(sample)}
	}

	lo, hi := sample[0], sample[0]
	for _, v := range sample[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return &isoNode{size: len(sample)}
	}

	threshold := lo + rng.Float64()*(hi-lo)
	if threshold >= hi {
		threshold = lo
	}

	var left, right []float64
	for _, v := range sample {
		if v <= threshold {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
	}

	return &isoNode{
		threshold: threshold,
		left:      growTree(rng, left, depth+1, maxDepth),
		right:     growTree(rng, right, depth+1, maxDepth),
		size:      len(sample),
	}
}

// pathLength is the depth at which value lands plus the expected depth
// of the unbuilt subtree below the leaf
func (n *isoNode) pathLength(value float64, depth int) float64 {
	if n.left == nil {
		return float64(depth) + averagePathLength(n.size)
	}
	if value <= n.threshold {
		return n.left.pathLength(value, depth+1)
	}
	return n.right.pathLength(value, depth+1)
}

// averagePathLength is the mean depth of an unsuccessful search in a
// binary search tree of n points
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	}
	fn := float64(n)
	return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
}

// percentile returns the p-th percentile of values, interpolating
// linearly between the closest ranks
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if hi >= len(sorted) {
		hi = len(sorted) - 1
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(rank-float64(lo))
}
