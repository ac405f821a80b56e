package apifootball

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
)

// envelope is the wrapper every API-Football response shares. Response and
// Errors stay raw: Response is decoded per operation, and Errors arrives as
// an empty array when clean but as an object of code->message on failure.
type envelope struct {
	Get      string          `json:"get"`
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Paging   paging          `json:"paging"`
	Response json.RawMessage `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// envelopeErrors flattens the provider's errors field into messages,
// whatever shape it took.
func envelopeErrors(raw json.RawMessage) []string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" || trimmed == "[]" || trimmed == "{}" {
		return nil
	}

	var asMap map[string]string
	if err := sonic.Unmarshal(raw, &asMap); err == nil {
		out := make([]string, 0, len(asMap))
		for code, message := range asMap {
			out = append(out, code+": "+message)
		}
		sort.Strings(out)
		return out
	}

	var asList []json.RawMessage
	if err := sonic.Unmarshal(raw, &asList); err == nil {
		out := make([]string, 0, len(asList))
		for _, item := range asList {
			var s string
			if err := sonic.Unmarshal(item, &s); err == nil {
				out = append(out, s)
				continue
			}
			var m map[string]string
			if err := sonic.Unmarshal(item, &m); err == nil {
				for code, message := range m {
					out = append(out, code+": "+message)
				}
			}
		}
		sort.Strings(out)
		return out
	}

	return []string{trimmed}
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Type string `json:"type"`
		Logo string `json:"logo"`
	} `json:"league"`
	Country struct {
		Name string `json:"name"`
		Code string `json:"code"`
		Flag string `json:"flag"`
	} `json:"country"`
	Seasons []seasonItem `json:"seasons"`
}

type seasonItem struct {
	Year     int    `json:"year"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Current  bool   `json:"current"`
	Coverage struct {
		Fixtures struct {
			Lineups bool `json:"lineups"`
		} `json:"fixtures"`
	} `json:"coverage"`
}

type teamItem struct {
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Logo string `json:"logo"`
	} `json:"team"`
	Venue struct {
		Name string `json:"name"`
	} `json:"venue"`
}

type fixtureItem struct {
	Fixture struct {
		ID     int64  `json:"id"`
		Date   string `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
		Venue struct {
			Name string `json:"name"`
		} `json:"venue"`
	} `json:"fixture"`
	Teams struct {
		Home fixtureTeam `json:"home"`
		Away fixtureTeam `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type fixtureTeam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type lineupEntry struct {
	Team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Coach struct {
		Name string `json:"name"`
	} `json:"coach"`
	Formation string       `json:"formation"`
	StartXI   []lineupSlot `json:"startXI"`
}

type lineupSlot struct {
	Player lineupPlayer `json:"player"`
}

type lineupPlayer struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
	Pos    string `json:"pos"`
	Grid   string `json:"grid"`
}
