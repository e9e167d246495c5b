package bucket_test

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/treedp/bqm"
)

// enumerate visits every complete assignment of m (2^n states) in a fixed
// order and reports it together with its exact energy.
func enumerate(m *bqm.Model, visit func(x bqm.Assignment, energy float64)) {
	var (
		vars = m.Variables()
		n    = len(vars)
		s    int
		i    int
	)
	for s = 0; s < 1<<n; s++ {
		x := make(bqm.Assignment, n)
		for i = 0; i < n; i++ {
			x[vars[i]] = m.Vartype().Value(int8((s >> i) & 1))
		}
		e, err := m.Energy(x)
		if err != nil {
			panic(err) // test models are always complete
		}
		visit(x, e)
	}
}

// bruteMinEnergy returns the exact ground-state energy by enumeration.
func bruteMinEnergy(m *bqm.Model) float64 {
	min := math.Inf(1)
	enumerate(m, func(_ bqm.Assignment, e float64) {
		if e < min {
			min = e
		}
	})

	return min
}

// bruteLogZ returns log Σ_states exp(−β·E) by stabilized enumeration.
func bruteLogZ(m *bqm.Model, beta float64) float64 {
	var weights []float64
	enumerate(m, func(_ bqm.Assignment, e float64) {
		weights = append(weights, -beta*e)
	})

	max := math.Inf(-1)
	for _, w := range weights {
		if w > max {
			max = w
		}
	}
	var sum float64
	for _, w := range weights {
		sum += math.Exp(w - max)
	}

	return max + math.Log(sum)
}

// bruteVariableMarginal returns P(v = high) by enumeration.
func bruteVariableMarginal(m *bqm.Model, v string, beta float64) float64 {
	var zHigh, z float64
	logZ := bruteLogZ(m, beta)
	enumerate(m, func(x bqm.Assignment, e float64) {
		p := math.Exp(-beta*e - logZ)
		z += p
		if x[v] == m.Vartype().High() {
			zHigh += p
		}
	})

	return zHigh / z
}

// brutePairMarginal returns P(u = a, v = b) by enumeration.
func brutePairMarginal(m *bqm.Model, u, v string, a, b int8, beta float64) float64 {
	var pAB float64
	logZ := bruteLogZ(m, beta)
	enumerate(m, func(x bqm.Assignment, e float64) {
		if x[u] == a && x[v] == b {
			pAB += math.Exp(-beta*e - logZ)
		}
	})

	return pAB
}

// randomModel builds a reproducible random model: n variables, each pair
// coupled with probability density, biases uniform in [-2, 2].
func randomModel(seed int64, n int, density float64, vt bqm.Vartype) *bqm.Model {
	var (
		rng = rand.New(rand.NewSource(seed))
		m   = bqm.NewModel(vt)
		i   int
		j   int
	)
	for i = 0; i < n; i++ {
		m.SetLinear(fmt.Sprint(i), 4*rng.Float64()-2)
	}
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if rng.Float64() < density {
				_ = m.SetQuadratic(fmt.Sprint(i), fmt.Sprint(j), 4*rng.Float64()-2)
			}
		}
	}
	m.SetOffset(4*rng.Float64() - 2)

	return m
}

// ferromagnet is the reference two-spin model 2·s₀ + 2·s₁ − s₀·s₁ with
// ground state (−1,−1) at energy −5.
func ferromagnet() *bqm.Model {
	m := bqm.NewModel(bqm.Spin)
	m.SetLinear("0", 2)
	m.SetLinear("1", 2)
	_ = m.SetQuadratic("0", "1", -1)

	return m
}
