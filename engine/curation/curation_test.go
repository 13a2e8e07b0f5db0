package curation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-server/engine/themes"
	"tp-server/models"
)

func museumCandidate(id, name string, lat, lng float64) Candidate {
	return Candidate{
		ID: id, Name: name, Lat: lat, Lng: lng, HasCoords: true,
		Types: []string{"museum"}, Duration: "90 minutes",
	}
}

func parkCandidate(id, name string, lat, lng float64) Candidate {
	return Candidate{
		ID: id, Name: name, Lat: lat, Lng: lng, HasCoords: true,
		Types: []string{"park"}, Duration: 60,
	}
}

func baseRequest(candidates []Candidate) Request {
	return Request{
		Candidates:  candidates,
		StartDate:   "2025-04-14",
		EndDate:     "2025-04-15",
		DayStartMin: 540,
		DayEndMin:   1260,
	}
}

func TestBuildThemedPlan_ThemedCandidatesScheduledFirst(t *testing.T) {
	candidates := []Candidate{
		parkCandidate("2", "Park", 48.86, 2.33),
		museumCandidate("1", "Louvre", 48.8606, 2.3376),
		museumCandidate("3", "Orsay", 48.8600, 2.3266),
	}
	req := baseRequest(candidates)
	req.RequestedTheme = themes.THEME_MUSEUMS

	result := BuildThemedPlan(req)

	require.Empty(t, result.Unplaced)
	require.NotEmpty(t, result.Days)
	// Museums open the first day, the park comes after them.
	first := result.Days[0]
	assert.Equal(t, "1", first.Items[0].ActivityID)
	assert.Equal(t, "3", first.Items[1].ActivityID)
	assert.Equal(t, "2", first.Items[2].ActivityID)
}

func TestBuildThemedPlan_OrderInvariantUnderPermutation(t *testing.T) {
	candidates := []Candidate{
		museumCandidate("10", "A", 48.8606, 2.3376),
		museumCandidate("11", "B", 48.8610, 2.3380),
		parkCandidate("12", "C", 48.8640, 2.3280),
		parkCandidate("13", "D", 59.91, 10.75),
		{ID: "14", Name: "E", Types: []string{"restaurant"}, Duration: "01:00:00"},
	}
	req := baseRequest(candidates)
	req.RequestedTheme = themes.THEME_MUSEUMS

	baseline := BuildThemedPlan(req)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := append([]Candidate(nil), candidates...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		req := baseRequest(shuffled)
		req.RequestedTheme = themes.THEME_MUSEUMS

		result := BuildThemedPlan(req)

		assert.Equal(t, baseline, result, "output changed under input permutation (trial %d)", trial)
	}
}

func TestBuildThemedPlan_InfersDominantTheme(t *testing.T) {
	candidates := []Candidate{
		museumCandidate("1", "A", 48.86, 2.33),
		museumCandidate("2", "B", 48.861, 2.331),
		parkCandidate("3", "C", 48.864, 2.328),
	}
	req := baseRequest(candidates)

	result := BuildThemedPlan(req)

	assert.Equal(t, themes.THEME_MUSEUMS, result.Theme)
}

func TestBuildThemedPlan_LockedDateHonored(t *testing.T) {
	locked := museumCandidate("5", "Locked", 48.86, 2.33)
	locked.LockedDate = "2025-04-15"
	candidates := []Candidate{
		museumCandidate("1", "A", 48.8606, 2.3376),
		locked,
	}
	req := baseRequest(candidates)
	req.RequestedTheme = themes.THEME_MUSEUMS

	result := BuildThemedPlan(req)

	require.Empty(t, result.Unplaced)
	for _, day := range result.Days {
		for _, item := range day.Items {
			if item.ActivityID == "5" {
				assert.Equal(t, "2025-04-15", day.Date)
			}
		}
	}
}

func TestBuildThemedPlan_OperationsValidAndCapped(t *testing.T) {
	var candidates []Candidate
	for _, id := range []string{"1", "2", "3", "4"} {
		candidates = append(candidates, museumCandidate(id, "M"+id, 48.86, 2.33))
	}
	req := baseRequest(candidates)
	req.MaxOperations = 2

	result := BuildThemedPlan(req)

	assert.Len(t, result.Operations, 2)
	assert.NoError(t, models.ValidateOperations(result.Operations))
	for _, op := range result.Operations {
		assert.Equal(t, models.OP_UPDATE_ACTIVITY, op.Type)
		require.NotNil(t, op.Date)
		require.NotNil(t, op.StartTime)
		require.NotNil(t, op.EndTime)
	}
	// The plan view still shows everything that was placed.
	total := 0
	for _, day := range result.Days {
		total += len(day.Items)
	}
	assert.Equal(t, 4, total)
}

func TestBuildThemedPlan_UnparseableDurationFallsBack(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Name: "Vague", Lat: 48.86, Lng: 2.33, HasCoords: true,
			Types: []string{"museum"}, Duration: "a couple of hours"},
	}
	req := baseRequest(candidates)

	result := BuildThemedPlan(req)

	require.Len(t, result.Days, 1)
	item := result.Days[0].Items[0]
	assert.Equal(t, DEFAULT_DURATION_MIN, item.EndMin-item.StartMin)
}

func TestBuildThemedPlan_EmptyRangeReturnsEmptyResult(t *testing.T) {
	req := baseRequest([]Candidate{museumCandidate("1", "A", 48.86, 2.33)})
	req.StartDate = "2025-04-15"
	req.EndDate = "2025-04-14"

	result := BuildThemedPlan(req)

	assert.Empty(t, result.Operations)
	assert.Empty(t, result.Days)
}
