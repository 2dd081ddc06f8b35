package hardycross_test

// Reference network: 23 pipes, 12 loops (clockwise traversal per loop).
var (
	refResistances = []float64{2, 3, 2, 3, 3, 3, 2, 2, 3, 2, 3, 2, 2, 2, 3, 2, 3, 3, 3, 3, 2, 3, 2}

	refDischarge = []float64{5, 35, 40, 5, 23, 40, 10, 20, 2, 22, 30, 30, 10, 10, 10, 20, 20, 30, 30, 20, 40, 30, 30}

	refLoops = [][]float64{
		{1, -1, 0, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, -1, 0, 0, -1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0, 0, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, -1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, -1, 1, -1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, -1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, -1, -1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, 1, -1},
	}

	// refSolution is the balanced discharge of the reference network (100 passes, tol 1e-6).
	refSolution = []float64{
		23.23039971134372, 8.770504728208143, 32.00090443955186, 3.048235908474355,
		16.53947369615922, 27.561332624668214, 26.278635619818065, 26.542500789780735,
		13.05126300209585, 12.442996645668675, 7.34936701104845, 30.258238823562618,
		30.1795241122173, -8.59118293747846, 7.982916581051292, 13.015333846034798,
		-14.257149772464803, 24.005794182479985, 17.781984812411675, -1.7808957613138627,
		23.17306940792121, 14.774441057017773, 28.398628350903444,
	}
)

// cloneSlice returns an independent copy of s.
func cloneSlice(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)

	return out
}
