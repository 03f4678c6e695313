package services

// classBucket is one half-open routing-time interval [Lower, Upper) mapped to
// a complexity class
type classBucket struct {
	Lower float64
	Upper float64 // exclusive; the last bucket is unbounded
	Label string
	Code  int
}

var classBuckets = []classBucket{
	{0, 160, "Low", 1},
	{160, 320, "Medium", 2},
	{320, 480, "High", 3},
	{480, 0, "Very High", 4}, // unbounded
}

// ExpertiseLabels maps a technician expertise level to its display label
var ExpertiseLabels = map[int]string{
	1: "Basic Knowledge",
	2: "Above Average",
	3: "Good",
	4: "Advanced",
}

// Classify maps a routing time in minutes to a complexity class label and its
// ordinal code (1-4). Routing times must be positive.
func Classify(routingTime float64) (string, int, error) {
	if routingTime <= 0 {
		return "", 0, &ValidationError{Field: "routing_time", Reason: "must be positive"}
	}
	for _, b := range classBuckets[:len(classBuckets)-1] {
		if routingTime < b.Upper {
			return b.Label, b.Code, nil
		}
	}
	last := classBuckets[len(classBuckets)-1]
	return last.Label, last.Code, nil
}
