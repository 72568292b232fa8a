package elevenq

import "fmt"

// Floors served by the installation. -1 is the basement.
var Floors = []int{-1, 1, 2, 3}

// ValidFloor reports whether floor is served.
func ValidFloor(floor int) bool {
	for _, f := range Floors {
		if f == floor {
			return true
		}
	}
	return false
}

// FloorToHex returns the 4-hex-digit wire encoding of a floor. The basement
// goes out as the 16-bit two's complement of -1.
func FloorToHex(floor int) string {
	if floor == -1 {
		return "FFFF"
	}
	return fmt.Sprintf("%04X", floor)
}

// FloorLabel returns the display name of a floor ("B1F", "1F", ...). Only
// used for narration, never for wire data.
func FloorLabel(floor int) string {
	switch {
	case floor == -1:
		return "B1F"
	case floor >= 1 && floor <= 3:
		return fmt.Sprintf("%dF", floor)
	default:
		return "?"
	}
}
