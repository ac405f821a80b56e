package lineup

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFormation reads a formation string such as "4-4-2" into its line
// sizes, ordered from defensive line to attacking line. The goalkeeper is
// implicit and never part of the string.
func ParseFormation(formation string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(formation), "-")
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty formation")
	}

	lines := make([]int, 0, len(parts))
	for _, part := range parts {
		size, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid formation %q", formation)
		}
		lines = append(lines, size)
	}

	return lines, nil
}

// SlotIndex converts the provider's "row:column" grid position into a flat
// 0-based slot. Row 1 is the goalkeeper (slot 0); for later rows the slot is
// 1 + the sizes of all formation lines before that row + (column - 1).
func SlotIndex(formation, grid string) (int, error) {
	row, column, err := parseGrid(grid)
	if err != nil {
		return 0, err
	}
	if row == 1 {
		return 0, nil
	}

	lines, err := ParseFormation(formation)
	if err != nil {
		return 0, err
	}
	if row-2 >= len(lines) {
		return 0, fmt.Errorf("grid row %d outside formation %q", row, formation)
	}
	if column > lines[row-2] {
		return 0, fmt.Errorf("grid column %d outside line %d of formation %q", column, row, formation)
	}

	index := 1
	for i := 0; i < row-2; i++ {
		index += lines[i]
	}
	index += column - 1

	if index >= StartingElevenSize {
		return 0, fmt.Errorf("grid %q maps outside a starting eleven", grid)
	}

	return index, nil
}

func parseGrid(grid string) (row, column int, err error) {
	parts := strings.SplitN(strings.TrimSpace(grid), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid grid position %q", grid)
	}

	row, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || row < 1 {
		return 0, 0, fmt.Errorf("invalid grid row in %q", grid)
	}
	column, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || column < 1 {
		return 0, 0, fmt.Errorf("invalid grid column in %q", grid)
	}

	return row, column, nil
}
