package normalization

import "strings"

// AnyOption is the canonical "no restriction" value for enumerated filters.
const AnyOption = "any"

// optionAliases maps the spellings UI controls send for "no restriction".
var optionAliases = map[string]string{
	"":    AnyOption,
	"-":   AnyOption,
	"any": AnyOption,
	"all": AnyOption,
	"*":   AnyOption,
}

// positionAliases maps shorthand position labels to the catalog's canonical names.
var positionAliases = map[string]string{
	"gk":                 "Goalkeeper",
	"goalkeeper":         "Goalkeeper",
	"cb":                 "Center Back",
	"center back":        "Center Back",
	"centre back":        "Center Back",
	"rb":                 "Right Back",
	"right back":         "Right Back",
	"lb":                 "Left Back",
	"left back":          "Left Back",
	"dm":                 "Defensive Midfield",
	"cdm":                "Defensive Midfield",
	"defensive midfield": "Defensive Midfield",
	"cm":                 "Central Midfield",
	"central midfield":   "Central Midfield",
	"am":                 "Attacking Midfield",
	"cam":                "Attacking Midfield",
	"attacking midfield": "Attacking Midfield",
	"w":                  "Winger",
	"lw":                 "Winger",
	"rw":                 "Winger",
	"winger":             "Winger",
	"st":                 "Striker",
	"cf":                 "Striker",
	"striker":            "Striker",
}

// leagueAliases maps league spellings to the catalog's canonical names.
var leagueAliases = map[string]string{
	"premier league": "Premier League",
	"epl":            "Premier League",
	"la liga":        "La Liga",
	"laliga":         "La Liga",
	"eredivisie":     "Eredivisie",
	"hnl":            "HNL",
}

// NormalizePosition returns AnyOption for sentinel values, the canonical
// position name for known aliases, and the trimmed input otherwise.
//
// Example:
//
//	NormalizePosition("all") => "any"
//	NormalizePosition(" rw ") => "Winger"
func NormalizePosition(raw string) string {
	return normalizeOption(raw, positionAliases)
}

// NormalizeLeague behaves like NormalizePosition for league names.
func NormalizeLeague(raw string) string {
	return normalizeOption(raw, leagueAliases)
}

func normalizeOption(raw string, aliases map[string]string) string {
	trimmed := strings.TrimSpace(raw)
	key := strings.ToLower(strings.Join(strings.Fields(trimmed), " "))
	if canonical, ok := optionAliases[key]; ok {
		return canonical
	}
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return trimmed
}
