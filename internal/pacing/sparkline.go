package pacing

import (
	"time"

	"github.com/momentumhq/momentum/internal/model"
)

// SparklinePoints is the fixed length of the dashboard progress series.
const SparklinePoints = 8

// SparklinePoint is one sample of the progress-over-time series. Value
// is a 0-100 percentage.
type SparklinePoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Sparkline is an ordered progress series for a cycle. Synthetic marks
// a placeholder ramp rendered when no check-ins exist yet, so the
// presentation layer can style it apart from real history.
type Sparkline struct {
	Points    []SparklinePoint `json:"points"`
	Synthetic bool             `json:"synthetic"`
}

// BuildSparkline produces the progress series for a cycle from its
// check-in history. Each check-in contributes the average progress
// ratio across its goal updates, replayed with the values recorded
// that week; the most recent SparklinePoints check-ins are kept. With
// no check-ins it falls back to a straight ramp from zero to the
// cycle's current time-pacing ratio.
func BuildSparkline(cycle *model.Cycle, checkIns []*model.WeeklyCheckIn, now time.Time) Sparkline {
	var points []SparklinePoint
	for _, ci := range checkIns {
		if len(ci.Updates) == 0 {
			// A logged week with no values still plots, at zero.
			points = append(points, SparklinePoint{
				Label: ci.WeekStart.Format("Jan 2"),
			})
			continue
		}
		var sum float64
		for _, u := range ci.Updates {
			if u.Goal == nil {
				continue
			}
			sum += ProgressAt(u.Goal, u.Value)
		}
		avg := sum / float64(len(ci.Updates))
		points = append(points, SparklinePoint{
			Label: ci.WeekStart.Format("Jan 2"),
			Value: avg * 100,
		})
	}

	if len(points) > 0 {
		if len(points) > SparklinePoints {
			points = points[len(points)-SparklinePoints:]
		}
		return Sparkline{Points: points}
	}

	return Sparkline{
		Points:    syntheticRamp(cycle, now),
		Synthetic: true,
	}
}

func syntheticRamp(cycle *model.Cycle, now time.Time) []SparklinePoint {
	target := TimeProgress(cycle.StartDate, cycle.EndDate, now) * 100

	points := make([]SparklinePoint, SparklinePoints)
	for i := range points {
		points[i] = SparklinePoint{
			Label: "",
			Value: target * float64(i) / float64(SparklinePoints-1),
		}
	}
	return points
}
