package engine

import "github.com/tartampluch/go-age/internal/config"

// Milestone is a badge awarded once a threshold is met.
// Key is the translation key; Label is the default text.
type Milestone struct {
	Key   string
	Label string
}

type threshold struct {
	min       int64
	milestone Milestone
}

// Thresholds are ascending; order matters.
var (
	ageThresholds = []threshold{
		{18, Milestone{config.TKeyMsAdult, config.MilestoneAdult}},
		{21, Milestone{config.TKeyMsDrinking, config.MilestoneDrinking}},
		{30, Milestone{config.TKeyMsThirty, config.MilestoneThirty}},
		{40, Milestone{config.TKeyMsForty, config.MilestoneForty}},
		{50, Milestone{config.TKeyMsGolden, config.MilestoneGolden}},
		{65, Milestone{config.TKeyMsRetirement, config.MilestoneRetirement}},
	}
	dayThresholds = []threshold{
		{1000, Milestone{config.TKeyMs1KDays, config.Milestone1KDays}},
		{5000, Milestone{config.TKeyMs5KDays, config.Milestone5KDays}},
		{10000, Milestone{config.TKeyMs10KDays, config.Milestone10KDays}},
		{20000, Milestone{config.TKeyMs20KDays, config.Milestone20KDays}},
	}

	growing = Milestone{config.TKeyMsGrowing, config.MilestoneGrowing}
)

// DeriveMilestones returns every milestone reached, age thresholds first,
// then day-count thresholds. The result is never empty.
func DeriveMilestones(years int, totalDays int64) []Milestone {
	var out []Milestone
	out = appendReached(out, ageThresholds, int64(years))
	out = appendReached(out, dayThresholds, totalDays)

	if len(out) == 0 {
		out = append(out, growing)
	}
	return out
}

func appendReached(out []Milestone, ts []threshold, value int64) []Milestone {
	for _, t := range ts {
		if value >= t.min {
			out = append(out, t.milestone)
		}
	}
	return out
}

// Labels returns the default labels of ms, in order.
func Labels(ms []Milestone) []string {
	labels := make([]string, len(ms))
	for i, m := range ms {
		labels[i] = m.Label
	}
	return labels
}
