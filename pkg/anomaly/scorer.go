package anomaly

//Label marks a point as an inlier or an outlier of its population.
//The values follow the isolation forest convention of 1 for inliers
//and -1 for outliers.
type Label int

const (
	//Normal is an inlier
	Normal Label = 1
	//Suspicious is an outlier
	Suspicious Label = -1
)

func (l Label) String() string {
	if l == Suspicious {
		return "SUSPICIOUS"
	}
	return "NORMAL"
}

//Native returns the 1 / -1 form of the label
func (l Label) Native() int {
	return int(l)
}

//Scorer labels every value of a one dimensional feature vector.
//Implementations must be deterministic and return one label per value.
type Scorer interface {
	Score(values []float64) []Label
}
