package league

import "fmt"

// League is one competition offered by the data provider, flattened from the
// provider's nested league/country pair.
type League struct {
	ID          int64
	Name        string
	Type        string
	LogoURL     string
	Country     string
	CountryCode string
	FlagURL     string
}

func (l League) Validate() error {
	if l.ID <= 0 {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}

	return nil
}

// Season is one playable year of a league. Seasons without lineup coverage
// are filtered out before they reach this model.
type Season struct {
	Year    int
	Start   string
	End     string
	Current bool
}
