package mindmap

import "math"

// Layout anchors and radii.
var (
	// RootAnchor is where list and KaWa roots are placed.
	RootAnchor = Position{X: 400, Y: 50}
	// CanvasCenter is the center of the letter circle for list and KaWa maps.
	CanvasCenter = Position{X: 400, Y: 200}
	// CombinedCenter is the root position and child-circle center of the
	// combined view.
	CombinedCenter = Position{X: 500, Y: 300}
)

const (
	LetterRadius   = 200.0
	WordRadius     = LetterRadius + 100
	KawaWordRadius = 350.0
	CombinedRadius = 250.0

	// WordFan is the angular offset between neighbouring words of a letter.
	WordFan = 0.3

	// MaxWordsPerLetter caps how many words of a bucket appear in the map.
	MaxWordsPerLetter = 3
)

// Radial places items evenly on a circle.
//
// The k-th of Count items sits at angle k·2π/max(Count, 1), measured in
// radians from the positive x-axis with y growing downwards (screen
// coordinates). Fan spreads secondary items around a base angle.
type Radial struct {
	Center Position
	Radius float64
	Count  int
	Fan    float64
}

// Step returns the angle between consecutive items.
func (r Radial) Step() float64 {
	return 2 * math.Pi / float64(max(r.Count, 1))
}

// Angle returns the angle of the k-th item.
func (r Radial) Angle(k int) float64 {
	return float64(k) * r.Step()
}

// At returns the point on the circle at angle.
func (r Radial) At(angle float64) Position {
	return Position{
		X: r.Center.X + r.Radius*math.Cos(angle),
		Y: r.Center.Y + r.Radius*math.Sin(angle),
	}
}

// Place returns the position of the k-th item.
func (r Radial) Place(k int) Position {
	return r.At(r.Angle(k))
}

// FanAt returns the position of the i-th item fanned around base. Item 1 sits
// on the base ray; item 0 and 2 sit one Fan step before and after it.
func (r Radial) FanAt(base float64, i int) Position {
	return r.At(base + float64(i-1)*r.Fan)
}
