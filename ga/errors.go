// Package ga refines the intensity-fraction variables (m_psi, m_v, m_phi)
// by genetic search: a population of candidate genes, each scored by
// running a full Simulator against a scratch copy of the data store,
// evolved by crossover, mutation, and truncation selection. Grounded on
// the ga-refiner design notes and sim_opt.py's role in orchestration.py
// (sim_opt.py itself was not present in the retrieved source).
package ga

import "errors"

// ErrInvariantBroken covers malformed gene/schema configurations: it is
// returned when a fraction variable has no rho index to normalize over.
var ErrInvariantBroken = errors.New("ga: invariant broken")
