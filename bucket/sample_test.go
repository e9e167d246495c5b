package bucket_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/treedp/bqm"
	"github.com/katalvlaran/treedp/bucket"
	"github.com/katalvlaran/treedp/elimorder"
)

func TestSampler_NilModel(t *testing.T) {
	_, err := bucket.NewSampler().Sample(nil)
	assert.ErrorIs(t, err, bucket.ErrNilModel)
}

func TestSampler_BadOptions(t *testing.T) {
	m := ferromagnet()

	_, err := bucket.NewSampler().Sample(m, bucket.WithBeta(math.NaN()))
	assert.ErrorIs(t, err, bucket.ErrBadBeta)

	_, err = bucket.NewSampler().Sample(m, bucket.WithBeta(math.Inf(1)))
	assert.ErrorIs(t, err, bucket.ErrBadBeta)

	_, err = bucket.NewSampler().Sample(m, bucket.WithNumReads(-1))
	assert.ErrorIs(t, err, bucket.ErrBadNumReads)
}

// TestSampler_EmptyModel: zero variables is a degenerate success with a
// zero log partition function and empty assignments.
func TestSampler_EmptyModel(t *testing.T) {
	m := bqm.NewModel(bqm.Spin)
	m.SetOffset(2.5)

	res, err := bucket.NewSampler().Sample(m, bucket.WithNumReads(3))
	require.NoError(t, err)

	assert.Zero(t, res.LogPartitionFunction)
	require.Len(t, res.Samples, 3)
	for i, sample := range res.Samples {
		assert.Empty(t, sample)
		assert.Equal(t, 2.5, res.Energies[i])
	}
	assert.NotNil(t, res.VariableMarginals)
	assert.Empty(t, res.VariableMarginals)
	assert.NotNil(t, res.InteractionMarginals)
}

// TestSampler_LogPartitionFunction checks logZ against stabilized
// enumeration on the ferromagnet and on random models, across betas and
// both vartypes.
func TestSampler_LogPartitionFunction(t *testing.T) {
	sampler := bucket.NewSampler()

	for _, beta := range []float64{0.5, 1, 3} {
		res, err := sampler.Sample(ferromagnet(),
			bucket.WithBeta(beta), bucket.WithNumReads(0))
		require.NoError(t, err)
		assert.InDelta(t, bruteLogZ(ferromagnet(), beta), res.LogPartitionFunction, 1e-9,
			"beta %v", beta)
	}

	for seed := int64(1); seed <= 8; seed++ {
		for _, vt := range []bqm.Vartype{bqm.Spin, bqm.Binary} {
			m := randomModel(seed, 6, 0.5, vt)
			res, err := sampler.Sample(m, bucket.WithBeta(1), bucket.WithNumReads(0))
			require.NoError(t, err)
			assert.InDelta(t, bruteLogZ(m, 1), res.LogPartitionFunction, 1e-9,
				"seed %d vartype %v", seed, vt)
		}
	}
}

// TestSampler_OffsetShiftsLogZ: adding c to every energy subtracts β·c
// from the log partition function.
func TestSampler_OffsetShiftsLogZ(t *testing.T) {
	base := ferromagnet()
	shifted := ferromagnet()
	shifted.SetOffset(base.Offset() + 2)

	a, err := bucket.NewSampler().Sample(base, bucket.WithNumReads(0))
	require.NoError(t, err)
	b, err := bucket.NewSampler().Sample(shifted, bucket.WithNumReads(0))
	require.NoError(t, err)

	assert.InDelta(t, a.LogPartitionFunction-3*2, b.LogPartitionFunction, 1e-9)
}

// TestSampler_SeedDeterminism: the same non-negative seed reproduces the
// exact sample set; distinct seeds are independent streams.
func TestSampler_SeedDeterminism(t *testing.T) {
	m := randomModel(5, 6, 0.5, bqm.Spin)
	sampler := bucket.NewSampler()

	// A flat beta keeps the distribution spread out, so distinct streams
	// cannot coincide by concentration alone.
	a, err := sampler.Sample(m, bucket.WithBeta(0.5), bucket.WithNumReads(20), bucket.WithSeed(42))
	require.NoError(t, err)
	b, err := sampler.Sample(m, bucket.WithBeta(0.5), bucket.WithNumReads(20), bucket.WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, a.Samples, b.Samples)
	assert.Equal(t, a.Energies, b.Energies)

	c, err := sampler.Sample(m, bucket.WithBeta(0.5), bucket.WithNumReads(20), bucket.WithSeed(43))
	require.NoError(t, err)
	assert.NotEqual(t, a.Samples, c.Samples, "different seeds should diverge on 20 reads of 6 spins")
}

// TestSampler_EnergiesMatchSamples: each reported energy is the model
// energy of its assignment, and every assignment is complete.
func TestSampler_EnergiesMatchSamples(t *testing.T) {
	m := randomModel(9, 5, 0.6, bqm.Binary)

	res, err := bucket.NewSampler().Sample(m, bucket.WithNumReads(50), bucket.WithSeed(7))
	require.NoError(t, err)
	require.Len(t, res.Samples, 50)

	for i, sample := range res.Samples {
		require.Len(t, sample, m.NumVariables())
		e, err := m.Energy(sample)
		require.NoError(t, err)
		assert.InDelta(t, e, res.Energies[i], 1e-9, "read %d", i)
	}
}

// TestSampler_ZeroBeta: at β = 0 the distribution is uniform, so logZ is
// n·log 2 and every variable marginal is 1/2.
func TestSampler_ZeroBeta(t *testing.T) {
	m := randomModel(2, 5, 0.5, bqm.Spin)

	res, err := bucket.NewSampler().Sample(m, bucket.WithBeta(0), bucket.WithNumReads(0))
	require.NoError(t, err)

	assert.InDelta(t, 5*math.Log(2), res.LogPartitionFunction, 1e-9)
	for v, p := range res.VariableMarginals {
		assert.InDelta(t, 0.5, p, 1e-9, "variable %s", v)
	}
}

// TestSampler_VariableMarginals checks exact marginals against
// enumeration on random models at several betas.
func TestSampler_VariableMarginals(t *testing.T) {
	sampler := bucket.NewSampler()
	for seed := int64(1); seed <= 6; seed++ {
		m := randomModel(seed, 5, 0.6, bqm.Spin)
		for _, beta := range []float64{0.5, 1, 2} {
			res, err := sampler.Sample(m, bucket.WithBeta(beta), bucket.WithNumReads(0))
			require.NoError(t, err)
			require.Len(t, res.VariableMarginals, m.NumVariables())
			for _, v := range m.Variables() {
				assert.InDelta(t, bruteVariableMarginal(m, v, beta), res.VariableMarginals[v], 1e-9,
					"seed %d beta %v variable %s", seed, beta, v)
			}
		}
	}
}

// TestSampler_InteractionMarginals checks the four-configuration joint of
// every quadratic interaction against enumeration, and that the four
// probabilities sum to one.
func TestSampler_InteractionMarginals(t *testing.T) {
	sampler := bucket.NewSampler()
	for seed := int64(1); seed <= 6; seed++ {
		m := randomModel(seed, 5, 0.6, bqm.Binary)
		res, err := sampler.Sample(m, bucket.WithBeta(1), bucket.WithNumReads(0))
		require.NoError(t, err)
		require.Len(t, res.InteractionMarginals, m.NumInteractions())

		for _, inter := range m.Interactions() {
			joint, ok := res.InteractionMarginals[inter]
			require.True(t, ok, "seed %d interaction %v", seed, inter)

			var total float64
			for cfgKey, p := range joint {
				total += p
				assert.InDelta(t,
					brutePairMarginal(m, inter.U, inter.V, cfgKey[0], cfgKey[1], 1),
					p, 1e-9, "seed %d interaction %v config %v", seed, inter, cfgKey)
			}
			assert.InDelta(t, 1.0, total, 1e-9)
		}
	}
}

// TestSampler_MarginalsDisabled: WithMarginals(false) leaves both maps nil.
func TestSampler_MarginalsDisabled(t *testing.T) {
	res, err := bucket.NewSampler().Sample(ferromagnet(),
		bucket.WithMarginals(false), bucket.WithNumReads(1), bucket.WithSeed(1))
	require.NoError(t, err)
	assert.Nil(t, res.VariableMarginals)
	assert.Nil(t, res.InteractionMarginals)
}

// TestSampler_ConcentratesOnGroundState: at a steep beta essentially every
// read lands in the ferromagnet's ground state.
func TestSampler_ConcentratesOnGroundState(t *testing.T) {
	res, err := bucket.NewSampler().Sample(ferromagnet(),
		bucket.WithBeta(10), bucket.WithNumReads(30), bucket.WithSeed(11))
	require.NoError(t, err)

	// exp(−10·Δ) with the gap Δ = 6 makes excited states astronomically rare.
	for i, sample := range res.Samples {
		assert.Equal(t, bqm.Assignment{"0": -1, "1": -1}, sample, "read %d", i)
		assert.Equal(t, -5.0, res.Energies[i])
	}
}

// TestSampler_ExplicitOrder: a caller-provided order is honored and its
// marginals agree with the min-fill run.
func TestSampler_ExplicitOrder(t *testing.T) {
	m := randomModel(4, 5, 0.6, bqm.Spin)
	vars := m.Variables()
	reversed := make([]string, len(vars))
	for i, v := range vars {
		reversed[len(vars)-1-i] = v
	}

	a, err := bucket.NewSampler().Sample(m, bucket.WithNumReads(0))
	require.NoError(t, err)
	b, err := bucket.NewSampler().Sample(m, bucket.WithNumReads(0), bucket.WithSampleOrder(reversed))
	require.NoError(t, err)

	assert.InDelta(t, a.LogPartitionFunction, b.LogPartitionFunction, 1e-9)
	for v, p := range a.VariableMarginals {
		assert.InDelta(t, p, b.VariableMarginals[v], 1e-9, "variable %s", v)
	}

	_, err = bucket.NewSampler().Sample(m, bucket.WithSampleOrder(vars[:2]))
	assert.ErrorIs(t, err, elimorder.ErrOrderInvalid)
}

// TestSampler_TreewidthCeiling: a tight ceiling rejects a model whose
// graph cannot be eliminated that thin.
func TestSampler_TreewidthCeiling(t *testing.T) {
	m := bqm.NewModel(bqm.Spin)
	names := []string{"a", "b", "c", "d"}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			require.NoError(t, m.SetQuadratic(names[i], names[j], 1))
		}
	}

	_, err := bucket.NewSampler(bucket.WithMaxTreewidth(2)).Sample(m)
	assert.ErrorIs(t, err, elimorder.ErrTreewidthExceeded)
}
