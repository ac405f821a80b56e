package namematch

import (
	"fmt"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José María", "jose maria"},
		{"  Zlatan Ibrahimović ", "zlatan ibrahimovic"},
		{"Müller", "muller"},
		{"N'Golo Kanté", "n'golo kante"},
		{"Håland", "haland"},
		{"PELÉ", "pele"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"José María", "van der Sar", "Ibrahimović", "  mixed CASE é  "}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestLastName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cristiano Ronaldo", "Ronaldo"},
		{"Pelé", "Pelé"},
		{"Matthijs de Ligt", "de Ligt"},
		{"Kevin De Bruyne", "De Bruyne"},
		{"Edwin van der Sar", "van der Sar"},
		{"Donny van de Beek", "van de Beek"},
		{"Virgil van Dijk", "van Dijk"},
		{"Ángel Di María", "Di María"},
		{"Mohamed Al Owais", "Al Owais"},
		{"Giovanni van Bronckhorst", "van Bronckhorst"},
		{"Lionel Andrés Messi", "Messi"},
		{"Ronaldinho", "Ronaldinho"},
	}

	for _, tc := range tests {
		if got := LastName(tc.in); got != tc.want {
			t.Fatalf("LastName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsMatch(t *testing.T) {
	tests := []struct {
		guess string
		full  string
		want  bool
	}{
		{"ligt", "Matthijs de Ligt", true},
		{"de ligt", "Matthijs de Ligt", true},
		{"De Ligt", "Matthijs de Ligt", true},
		{"matthijs", "Matthijs de Ligt", false},
		{"ronaldo", "Cristiano Ronaldo", true},
		{"cristiano", "Cristiano Ronaldo", false},
		{"RONALDO", "Cristiano Ronaldo", true},
		{"kante", "N'Golo Kanté", false}, // apostrophe is part of the surname
		{"n'golo kante", "N'Golo Kanté", true},
		{"sar", "Edwin van der Sar", true},
		{"van der sar", "Edwin van der Sar", true},
		{"der sar", "Edwin van der Sar", false}, // no partial compound matching
		{"onald", "Cristiano Ronaldo", false},   // no substring matching
		{"", "Cristiano Ronaldo", false},
		{"   ", "Cristiano Ronaldo", false},
	}

	for _, tc := range tests {
		if got := IsMatch(tc.guess, tc.full); got != tc.want {
			t.Fatalf("IsMatch(%q, %q) = %v, want %v", tc.guess, tc.full, got, tc.want)
		}
	}
}

func TestLetterHint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Cristiano Ronaldo", "_______"},
		{"Shaun O'Brien", "_'_____"},
		{"Trent Alexander-Arnold", "_________-______"},
		{"Matthijs de Ligt", "_______"}, // "de Ligt": the space is masked too
		{"Pelé", "____"},
	}

	for _, tc := range tests {
		got := LetterHint(tc.in)
		if got != tc.want {
			t.Fatalf("LetterHint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLetterHint_PreservesLengthAndPunctuation(t *testing.T) {
	lastName := LastName("Shaun O'Brien")
	hint := LetterHint("Shaun O'Brien")

	if len([]rune(hint)) != len([]rune(lastName)) {
		t.Fatalf("hint length %d != surname length %d", len([]rune(hint)), len([]rune(lastName)))
	}
	if idx := strings.IndexRune(hint, '\''); idx != strings.IndexRune(lastName, '\'') {
		t.Fatalf("apostrophe moved: hint index %d, surname index %d", idx, strings.IndexRune(lastName, '\''))
	}
	for i, r := range hint {
		if r != '_' && r != '\'' {
			t.Fatalf("unexpected rune %q at %d in hint %q", r, i, hint)
		}
	}
}

func TestMemos_FIFOBoundAndBehaviorPreserved(t *testing.T) {
	ResetMemos()
	t.Cleanup(ResetMemos)

	// Overflow the normalize memo and check the bound holds.
	for i := 0; i < memoCapacity+50; i++ {
		Normalize(fmt.Sprintf("Player Número %d", i))
	}
	if got := normalizeMemo.len(); got != memoCapacity {
		t.Fatalf("normalize memo holds %d entries, want %d", got, memoCapacity)
	}

	// The oldest-inserted keys were evicted, the newest retained.
	if _, ok := normalizeMemo.get("Player Número 0"); ok {
		t.Fatalf("oldest memo entry should have been evicted")
	}
	if _, ok := normalizeMemo.get(fmt.Sprintf("Player Número %d", memoCapacity+49)); !ok {
		t.Fatalf("newest memo entry should be retained")
	}

	// Eviction and clearing never change results.
	before := Normalize("Player Número 0")
	ResetMemos()
	if after := Normalize("Player Número 0"); after != before {
		t.Fatalf("memo state changed observable behavior: %q != %q", before, after)
	}
}

func TestMemoFIFO(t *testing.T) {
	t.Parallel()

	m := newMemo(3)
	m.put("a", "1")
	m.put("b", "2")
	m.put("c", "3")
	m.put("a", "1") // re-insert keeps original position
	m.put("d", "4") // evicts "a"

	if _, ok := m.get("a"); ok {
		t.Fatalf("expected oldest key evicted")
	}
	for _, key := range []string{"b", "c", "d"} {
		if _, ok := m.get(key); !ok {
			t.Fatalf("expected key %q retained", key)
		}
	}
	if got := m.len(); got != 3 {
		t.Fatalf("memo len = %d, want 3", got)
	}
}
