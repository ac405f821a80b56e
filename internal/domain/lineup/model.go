package lineup

// StartingElevenSize is the only supported formation layout size.
const StartingElevenSize = 11

// Player is one member of a starting eleven. SlotIndex is the flat 0-based
// formation slot derived from the provider's grid position: 0 is always the
// goalkeeper, then defensive line to attacking line, left to right.
type Player struct {
	ID        int64
	Name      string
	Number    int
	Position  string
	SlotIndex int
}

// Lineup is one team's starting eleven for a played fixture. Starters are
// ordered by SlotIndex.
type Lineup struct {
	TeamID    int64
	TeamName  string
	Coach     string
	Formation string
	Starters  []Player
}
