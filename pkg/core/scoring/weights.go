package scoring

// Weights is the single source of truth for the composite score weighting.
// Each field is a fraction of the total; the fields of either table sum to 1.
type Weights struct {
	Clearance  float64
	Compliance float64
	Preference float64
	Fairness   float64
	Workload   float64
}

var (
	// weightsWithClearance applies to shifts at sites requiring an object
	// clearance
	weightsWithClearance = Weights{
		Clearance:  0.20,
		Compliance: 0.35,
		Preference: 0.25,
		Fairness:   0.15,
		Workload:   0.05,
	}

	// weightsWithoutClearance redistributes the clearance share across the
	// remaining components
	weightsWithoutClearance = Weights{
		Clearance:  0,
		Compliance: 0.40,
		Preference: 0.30,
		Fairness:   0.20,
		Workload:   0.10,
	}
)

// WeightsFor returns the weight table for a shift, keyed by whether its site
// requires a clearance
func WeightsFor(clearanceRequired bool) Weights {
	if clearanceRequired {
		return weightsWithClearance
	}
	return weightsWithoutClearance
}

// Apply computes the weighted composite of a breakdown using this table
func (w Weights) Apply(clearance, compliance, preference, fairness, workload float64) float64 {
	return w.Clearance*clearance +
		w.Compliance*compliance +
		w.Preference*preference +
		w.Fairness*fairness +
		w.Workload*workload
}
