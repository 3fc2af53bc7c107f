package risk

//Tier is a coarse risk bucket derived from a failure count
type Tier string

const (
	//Low is at most one failure
	Low Tier = "LOW"
	//Medium is two or three failures
	Medium Tier = "MEDIUM"
	//High is more than three failures
	High Tier = "HIGH"
)

const (
	highThreshold   = 3
	mediumThreshold = 1
)

//Tiers lists every tier from least to most severe
var Tiers = []Tier{Low, Medium, High}

func (t Tier) String() string {
	return string(t)
}

//Classify maps a failure count onto a risk tier
func Classify(failCount int) Tier {
	if failCount > highThreshold {
		return High
	}
	if failCount > mediumThreshold {
		return Medium
	}
	return Low
}

//Distribution counts how many times each tier occurs.
//Every tier is present in the result, possibly with a zero count.
func Distribution(tiers []Tier) map[Tier]int {
	dist := make(map[Tier]int, len(Tiers))
	for _, tier := range Tiers {
		dist[tier] = 0
	}
	for _, tier := range tiers {
		dist[tier]++
	}
	return dist
}
