package nav

import "math"

// Default geometry tunables. All overridable through resolver options.
const (
	// DefaultHeaderHeight is the fixed header band excluded from the active
	// zone.
	DefaultHeaderHeight = 80.0

	// DefaultZoneRatio places the bottom of the active zone at this fraction
	// of the container height.
	DefaultZoneRatio = 0.6

	// DefaultTopThreshold forces the first target active when scrollTop is at
	// or below it, regardless of geometry.
	DefaultTopThreshold = 50.0
)

// Geometry is one candidate's bounding box in the container viewport frame,
// plus the single group fact the scoring formula cares about.
type Geometry struct {
	Top    float64
	Bottom float64

	// Grouped is true when the candidate belongs to a multi-member NavGroup.
	Grouped bool
}

// Env is the viewport context a candidate is scored against.
type Env struct {
	ContainerHeight float64
	HeaderHeight    float64
	ZoneRatio       float64
}

// Zone returns the active zone band [top, bottom) of the viewport.
func (e Env) Zone() (top, bottom float64) {
	return e.HeaderHeight, e.ContainerHeight * e.ZoneRatio
}

// Score computes a candidate's relevance for the active zone. Higher is more
// relevant. The bonus terms are additive and deliberately uncapped; in corner
// cases two bonuses can outweigh a dominant overlap, and that behavior is
// kept as-is.
func Score(g Geometry, env Env) float64 {
	zoneTop, zoneBottom := env.Zone()

	height := g.Bottom - g.Top
	overlap := math.Max(0, math.Min(zoneBottom, g.Bottom)-math.Max(zoneTop, g.Top))

	var visibility float64
	if span := math.Min(height, zoneBottom-zoneTop); span > 0 {
		visibility = overlap / span
	}

	position := 1.0
	if g.Top > zoneTop+100 {
		position = math.Max(0, 1-math.Abs(g.Top-zoneTop)/200)
	}

	score := 0.7*visibility + 0.3*position

	// Candidate spans the heart of the zone.
	if g.Top <= zoneTop+50 && g.Bottom >= zoneTop+200 {
		score += 0.2
	}
	// Tall section dominating the viewport from the top of the zone.
	if height > 1.5*env.ContainerHeight && g.Top <= zoneTop {
		score += 0.3
	}
	// Grouped sections count for their shared target once visibly engaged.
	if g.Grouped && overlap > 100 {
		score += 0.2
	}

	return score
}
