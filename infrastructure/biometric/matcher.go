package biometric

import (
	"math"

	"atmsecurity.io/infrastructure/biometric/types"
	"atmsecurity.io/infrastructure/logger"
	"gonum.org/v1/gonum/floats"
)

// DefaultMatchThreshold is the largest Euclidean distance still accepted as
// the same person for 128-d dlib descriptors.
const DefaultMatchThreshold = 0.5

type Matcher struct {
	Threshold float64
	Dimension int
}

func NewMatcher(threshold float64, dimension int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	if dimension <= 0 {
		dimension = types.DescriptorSize
	}
	return &Matcher{Threshold: threshold, Dimension: dimension}
}

// Distance is the Euclidean distance between two descriptors of equal length.
func Distance(a, b types.Descriptor) float64 {
	return floats.Distance(a, b, 2)
}

// Match scans candidates in the order given and returns the closest one under
// the threshold. Ties keep the earliest candidate. Candidates whose stored
// descriptor has the wrong dimension are skipped.
func (m *Matcher) Match(query types.Descriptor, candidates []types.Candidate) types.MatchResult {
	if !query.Valid(m.Dimension) {
		return types.MatchResult{}
	}

	best := math.Inf(1)
	var bestCandidate *types.Candidate
	for i := range candidates {
		candidate := &candidates[i]
		if !candidate.Descriptor.Valid(m.Dimension) {
			logger.Debug("skipping malformed stored descriptor", logger.LoggerOptions{
				Key:  "identityID",
				Data: candidate.IdentityID,
			}, logger.LoggerOptions{
				Key:  "dimension",
				Data: len(candidate.Descriptor),
			})
			continue
		}
		distance := Distance(query, candidate.Descriptor)
		if math.IsNaN(distance) {
			continue
		}
		if distance < m.Threshold && distance < best {
			best = distance
			bestCandidate = candidate
		}
	}

	if bestCandidate == nil {
		return types.MatchResult{}
	}
	matched := *bestCandidate
	return types.MatchResult{
		Matched:   true,
		Candidate: &matched,
		Distance:  best,
	}
}
