package anomaly

import (
	"github.com/activecm/cybershield/pkg/failure"
)

//Detector flags addresses whose failure count is unusual for the batch
type Detector struct {
	scorer Scorer
}

//NewDetector creates a Detector backed by the given scorer
func NewDetector(scorer Scorer) *Detector {
	return &Detector{scorer: scorer}
}

//Detect returns one label per stat, in the same order. A single address
//has no population to be compared against and is always Normal; the
//scorer is only consulted for two or more addresses.
func (d *Detector) Detect(stats []failure.Stat) []Label {
	switch len(stats) {
	case 0:
		return []Label{}
	case 1:
		return []Label{Normal}
	}
	return d.scorer.Score(failure.Counts(stats))
}
