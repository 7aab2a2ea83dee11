package biometric

import (
	"math"
	"math/rand"
	"testing"

	"atmsecurity.io/infrastructure/biometric/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id string, descriptor types.Descriptor) types.Candidate {
	return types.Candidate{IdentityID: id, DisplayName: "user " + id, Descriptor: descriptor}
}

func TestMatch(t *testing.T) {
	query := vectorAt(0)

	tests := []struct {
		name         string
		candidates   []types.Candidate
		threshold    float64
		wantMatched  bool
		wantID       string
		wantDistance float64
	}{
		{
			name:         "closest candidate under threshold wins",
			candidates:   []types.Candidate{candidate("A", vectorAt(0.3)), candidate("B", vectorAt(0.45))},
			threshold:    0.5,
			wantMatched:  true,
			wantID:       "A",
			wantDistance: 0.3,
		},
		{
			name:         "order does not hide a closer candidate",
			candidates:   []types.Candidate{candidate("B", vectorAt(0.45)), candidate("A", vectorAt(0.3))},
			threshold:    0.5,
			wantMatched:  true,
			wantID:       "A",
			wantDistance: 0.3,
		},
		{
			name:        "nothing under threshold",
			candidates:  []types.Candidate{candidate("A", vectorAt(0.6))},
			threshold:   0.5,
			wantMatched: false,
		},
		{
			name:        "empty candidate set",
			candidates:  nil,
			threshold:   0.5,
			wantMatched: false,
		},
		{
			name:         "ties keep the first candidate",
			candidates:   []types.Candidate{candidate("A", vectorAt(0.3)), candidate("B", vectorAt(0.3))},
			threshold:    0.5,
			wantMatched:  true,
			wantID:       "A",
			wantDistance: 0.3,
		},
		{
			name:        "distance equal to threshold is rejected",
			candidates:  []types.Candidate{candidate("A", vectorAt(0.5))},
			threshold:   0.5,
			wantMatched: false,
		},
		{
			name: "malformed stored descriptors are skipped",
			candidates: []types.Candidate{
				candidate("short", make(types.Descriptor, 127)),
				candidate("long", make(types.Descriptor, 129)),
				candidate("empty", nil),
				candidate("B", vectorAt(0.4)),
			},
			threshold:    0.5,
			wantMatched:  true,
			wantID:       "B",
			wantDistance: 0.4,
		},
		{
			name:         "threshold is configurable",
			candidates:   []types.Candidate{candidate("A", vectorAt(0.6))},
			threshold:    0.7,
			wantMatched:  true,
			wantID:       "A",
			wantDistance: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewMatcher(tt.threshold, types.DescriptorSize).Match(query, tt.candidates)
			assert.Equal(t, tt.wantMatched, result.Matched)
			if !tt.wantMatched {
				assert.Nil(t, result.Candidate)
				return
			}
			require.NotNil(t, result.Candidate)
			assert.Equal(t, tt.wantID, result.Candidate.IdentityID)
			assert.InDelta(t, tt.wantDistance, result.Distance, 1e-9)
			assert.InDelta(t, 1-tt.wantDistance, result.Confidence(), 1e-9)
		})
	}
}

func TestMatchRejectsMalformedQuery(t *testing.T) {
	matcher := NewMatcher(0.5, types.DescriptorSize)
	result := matcher.Match(make(types.Descriptor, 64), []types.Candidate{candidate("A", vectorAt(0))})
	assert.False(t, result.Matched)
}

func TestNewMatcherDefaults(t *testing.T) {
	matcher := NewMatcher(0, 0)
	assert.Equal(t, DefaultMatchThreshold, matcher.Threshold)
	assert.Equal(t, types.DescriptorSize, matcher.Dimension)
}

func TestDistanceIsEuclidean(t *testing.T) {
	a := make(types.Descriptor, types.DescriptorSize)
	b := make(types.Descriptor, types.DescriptorSize)
	a[0], b[0] = 3, 0
	a[1], b[1] = 0, 4
	assert.InDelta(t, 5.0, Distance(a, b), 1e-12)
	assert.Equal(t, 0.0, Distance(a, a))
}

func randomDescriptor(r *rand.Rand) types.Descriptor {
	d := make(types.Descriptor, types.DescriptorSize)
	for i := range d {
		d[i] = r.NormFloat64() * 0.03
	}
	return d
}

// The matcher must agree with a brute force search over every candidate.
func TestMatchAgreesWithBruteForce(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	matcher := NewMatcher(0.5, types.DescriptorSize)

	for round := 0; round < 200; round++ {
		query := randomDescriptor(r)
		candidates := make([]types.Candidate, r.Intn(20))
		for i := range candidates {
			candidates[i] = candidate(string(rune('a'+i)), randomDescriptor(r))
		}

		wantIndex, wantDistance := -1, math.Inf(1)
		for i, c := range candidates {
			var sum float64
			for j := range c.Descriptor {
				diff := query[j] - c.Descriptor[j]
				sum += diff * diff
			}
			distance := math.Sqrt(sum)
			if distance < 0.5 && distance < wantDistance {
				wantIndex, wantDistance = i, distance
			}
		}

		result := matcher.Match(query, candidates)
		if wantIndex < 0 {
			assert.False(t, result.Matched, "round %d", round)
			continue
		}
		require.True(t, result.Matched, "round %d", round)
		assert.Equal(t, candidates[wantIndex].IdentityID, result.Candidate.IdentityID, "round %d", round)
		assert.InDelta(t, wantDistance, result.Distance, 1e-9)
		assert.Less(t, result.Distance, matcher.Threshold)
	}
}
