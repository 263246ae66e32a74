package vision

import "fmt"

// Direction is the side a piece of tape leans toward.
type Direction int

const (
	// Left is any normalized angle <= 0.
	Left Direction = iota
	// Right is a normalized angle > 0.
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalText encodes the direction as "LEFT" or "RIGHT".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// directionOf classifies a normalized angle; exactly zero is Left.
func directionOf(angle float64) Direction {
	if angle > 0 {
		return Right
	}
	return Left
}

// UnmarshalText accepts "LEFT" or "RIGHT".
func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "LEFT":
		*d = Left
	case "RIGHT":
		*d = Right
	default:
		return fmt.Errorf("unknown direction %q", b)
	}
	return nil
}
