package team

// Team is a club competing in a league season. VenueName is optional; not
// every club record carries a stadium.
type Team struct {
	ID        int64
	Name      string
	LogoURL   string
	VenueName string
}
