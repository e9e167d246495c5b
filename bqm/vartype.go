package bqm

// ChangeVartype converts the model in place between the SPIN and BINARY
// representations through the affine map s = 2b − 1, rewriting biases and
// offset so that the energy of corresponding assignments is unchanged.
// Converting to the current vartype is a no-op.
//
// Complexity: O(V + E).
func (m *Model) ChangeVartype(vt Vartype) {
	if vt == m.vartype {
		return
	}

	var (
		v    string
		pair Interaction
		j    float64
	)
	if vt == Binary {
		// SPIN → BINARY: h' = 2h − 2·ΣJ, J' = 4J, c' = c − Σh + ΣJ.
		for _, v = range m.names {
			m.offset -= m.linear[v]
			m.linear[v] *= 2
		}
		for _, pair = range m.pairs {
			j = m.quad[pair]
			m.linear[pair.U] -= 2 * j
			m.linear[pair.V] -= 2 * j
			m.offset += j
			m.quad[pair] = 4 * j
		}
	} else {
		// BINARY → SPIN: h' = h/2 + ΣJ/4, J' = J/4, c' = c + Σh/2 + ΣJ/4.
		for _, v = range m.names {
			m.offset += m.linear[v] / 2
			m.linear[v] /= 2
		}
		for _, pair = range m.pairs {
			j = m.quad[pair]
			m.linear[pair.U] += j / 4
			m.linear[pair.V] += j / 4
			m.offset += j / 4
			m.quad[pair] = j / 4
		}
	}
	m.vartype = vt
}
