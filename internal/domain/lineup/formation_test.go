package lineup

import "testing"

func TestParseFormation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		formation string
		want      []int
		wantErr   bool
	}{
		{formation: "4-4-2", want: []int{4, 4, 2}},
		{formation: "4-2-3-1", want: []int{4, 2, 3, 1}},
		{formation: "3-5-2", want: []int{3, 5, 2}},
		{formation: "", wantErr: true},
		{formation: "4-x-2", wantErr: true},
		{formation: "4--2", wantErr: true},
		{formation: "4-0-2", wantErr: true},
	}

	for _, tc := range tests {
		lines, err := ParseFormation(tc.formation)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseFormation(%q): expected error", tc.formation)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseFormation(%q): %v", tc.formation, err)
		}
		if len(lines) != len(tc.want) {
			t.Fatalf("ParseFormation(%q) = %v, want %v", tc.formation, lines, tc.want)
		}
		for i := range lines {
			if lines[i] != tc.want[i] {
				t.Fatalf("ParseFormation(%q) = %v, want %v", tc.formation, lines, tc.want)
			}
		}
	}
}

func TestSlotIndex_FourFourTwo(t *testing.T) {
	t.Parallel()

	vectors := map[string]int{
		"1:1": 0,
		"2:1": 1, "2:2": 2, "2:3": 3, "2:4": 4,
		"3:1": 5, "3:2": 6, "3:3": 7, "3:4": 8,
		"4:1": 9, "4:2": 10,
	}

	for grid, want := range vectors {
		got, err := SlotIndex("4-4-2", grid)
		if err != nil {
			t.Fatalf("SlotIndex(4-4-2, %q): %v", grid, err)
		}
		if got != want {
			t.Fatalf("SlotIndex(4-4-2, %q) = %d, want %d", grid, got, want)
		}
	}
}

func TestSlotIndex_FourTwoThreeOne(t *testing.T) {
	t.Parallel()

	vectors := map[string]int{
		"1:1": 0,
		"2:4": 4,
		"3:1": 5, "3:2": 6,
		"4:1": 7, "4:3": 9,
		"5:1": 10,
	}

	for grid, want := range vectors {
		got, err := SlotIndex("4-2-3-1", grid)
		if err != nil {
			t.Fatalf("SlotIndex(4-2-3-1, %q): %v", grid, err)
		}
		if got != want {
			t.Fatalf("SlotIndex(4-2-3-1, %q) = %d, want %d", grid, got, want)
		}
	}
}

func TestSlotIndex_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		formation string
		grid      string
	}{
		{"4-4-2", ""},
		{"4-4-2", "2"},
		{"4-4-2", "0:1"},
		{"4-4-2", "2:0"},
		{"4-4-2", "2:5"},
		{"4-4-2", "5:1"},
		{"not-a-formation", "2:1"},
	}

	for _, tc := range cases {
		if _, err := SlotIndex(tc.formation, tc.grid); err == nil {
			t.Fatalf("SlotIndex(%q, %q): expected error", tc.formation, tc.grid)
		}
	}
}
