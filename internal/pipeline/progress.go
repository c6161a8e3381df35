package pipeline

import "github.com/theirongolddev/revtrack/internal/model"

// MarkerStep is the spacing of goal progress markers.
const MarkerStep = 20000

// GoalProgress computes the clamped completion percentage and the marker
// positions strictly below the target.
func GoalProgress(current, target float64) model.GoalProgress {
	gp := model.GoalProgress{Current: current, Target: target}

	switch {
	case target <= 0:
		if current > 0 {
			gp.Percent = 100
		}
		return gp
	default:
		gp.Percent = min(100, max(0, current/target*100))
	}

	for m := float64(MarkerStep); m < target; m += MarkerStep {
		gp.Markers = append(gp.Markers, m)
	}
	return gp
}

// LabeledMarkers returns the markers far enough from either end of the bar
// to carry a label (between 5% and 95% of the target).
func LabeledMarkers(gp model.GoalProgress) []float64 {
	if gp.Target <= 0 {
		return nil
	}
	var out []float64
	for _, m := range gp.Markers {
		pos := m / gp.Target * 100
		if pos < 5 || pos > 95 {
			continue
		}
		out = append(out, m)
	}
	return out
}
