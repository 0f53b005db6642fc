package scoring

import (
	"sort"
	"strings"
	"time"
)

// ScoringWindowDays is the default trailing activity window the dimension
// scorers operate on.
const ScoringWindowDays = 30

// sparseFallbackCount keeps scoring meaningful for athletes who log rarely:
// when the date window holds fewer activities than this, the most recent
// ones are used regardless of age.
const sparseFallbackCount = 10

// ActivityClassifier decides whether an activity belongs to some class,
// e.g. indoor/virtual rides. Kept as a function value so the default
// name-substring heuristic can be swapped without touching scoring logic.
type ActivityClassifier func(Activity) bool

var indoorNameMarkers = []string{"virtual", "indoor", "zwift", "trainer", "turbo", "rollers"}

// IsIndoorByName is the default indoor/virtual classifier. It is a
// name-substring heuristic and intentionally isolated here.
func IsIndoorByName(a Activity) bool {
	name := strings.ToLower(a.Name)
	for _, marker := range indoorNameMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(a.Type), "virtual")
}

// SortMostRecentFirst returns a copy of activities ordered by start date
// descending. Scorers and the trend classifier rely on this ordering.
func SortMostRecentFirst(activities []Activity) []Activity {
	sorted := make([]Activity, len(activities))
	copy(sorted, activities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	return sorted
}

// WindowForScoring filters activities down to the trailing scoring window
// ending at now, ordered most-recent-first. When date coverage is sparse it
// falls back to the most recent activities irrespective of age.
func WindowForScoring(activities []Activity, now time.Time) []Activity {
	sorted := SortMostRecentFirst(activities)

	cutoff := now.AddDate(0, 0, -ScoringWindowDays)
	var windowed []Activity
	for _, a := range sorted {
		if a.StartDate.After(now) {
			continue
		}
		if a.StartDate.Before(cutoff) {
			break
		}
		windowed = append(windowed, a)
	}

	if len(windowed) < sparseFallbackCount {
		if len(sorted) <= sparseFallbackCount {
			return sorted
		}
		return sorted[:sparseFallbackCount]
	}

	return windowed
}

// FilterByType keeps only activities whose type matches one of the given
// types (case-insensitive).
func FilterByType(activities []Activity, types ...string) []Activity {
	if len(types) == 0 {
		return activities
	}

	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[strings.ToLower(t)] = true
	}

	var filtered []Activity
	for _, a := range activities {
		if wanted[strings.ToLower(a.Type)] {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// ExcludeClass drops activities matched by the classifier. A nil classifier
// defaults to the indoor/virtual name heuristic.
func ExcludeClass(activities []Activity, classifier ActivityClassifier) []Activity {
	if classifier == nil {
		classifier = IsIndoorByName
	}

	var kept []Activity
	for _, a := range activities {
		if !classifier(a) {
			kept = append(kept, a)
		}
	}
	return kept
}
