package domain

import (
	"strings"

	"scoutWorkspace/internal/shared/normalization"
)

// Player is the summary projection the catalog returns for list views.
type Player struct {
	ID              string  `json:"id"`
	FMID            int     `json:"fm_id,omitempty"`
	Name            string  `json:"name"`
	Club            string  `json:"club"`
	League          string  `json:"league"`
	Position        string  `json:"position"`
	Age             int     `json:"age"`
	Nationality     string  `json:"nationality"`
	Image           string  `json:"image,omitempty"`
	MarketValue     string  `json:"market_value"`
	MarketValueM    float64 `json:"market_value_m,omitempty"`
	PredictedGrowth float64 `json:"predicted_growth"`
	TacticalRole    string  `json:"tactical_role,omitempty"`
	ContractExpiry  string  `json:"contract_expiry,omitempty"`
	MarketSurge     float64 `json:"market_surge,omitempty"`
	Stats           Stats   `json:"stats"`
}

// Stats holds the headline attribute columns.
type Stats struct {
	Pace      int     `json:"pace"`
	Shooting  int     `json:"shooting"`
	Passing   int     `json:"passing"`
	Dribbling int     `json:"dribbling"`
	Defending int     `json:"defending"`
	Physical  int     `json:"physical"`
	XGPer90   float64 `json:"xg_per_90"`
	XAPer90   float64 `json:"xa_per_90"`
	PPDA      float64 `json:"ppda"`
}

// PlayerFromMap builds a Player from a loosely typed catalog row.
// The second return is false when the row has no identifier.
func PlayerFromMap(row map[string]any) (Player, bool) {
	if len(row) == 0 {
		return Player{}, false
	}
	id := normalization.AsString(row["id"])
	if id == "" {
		return Player{}, false
	}
	player := Player{
		ID:              id,
		FMID:            normalization.AsInt(row["fm_id"]),
		Name:            normalization.AsString(row["name"]),
		Club:            normalization.AsString(row["club"]),
		League:          normalization.AsString(row["league"]),
		Position:        normalization.AsString(row["position"]),
		Age:             normalization.AsInt(row["age"]),
		Nationality:     normalization.AsString(row["nationality"]),
		Image:           normalization.AsString(row["image"]),
		MarketValue:     normalization.AsString(row["market_value"]),
		PredictedGrowth: normalization.AsFloat64(row["predicted_growth"]),
		TacticalRole:    normalization.AsString(row["tactical_role"]),
		ContractExpiry:  normalization.AsString(row["contract_expiry"]),
		MarketSurge:     normalization.AsFloat64(row["market_surge"]),
	}
	if millions, ok := normalization.MarketValueMillions(player.MarketValue); ok {
		player.MarketValueM = millions
	}

	stats := normalization.MapFromPayload(row["stats"])
	if stats == nil {
		stats = row
	}
	player.Stats = Stats{
		Pace:      normalization.AsInt(stats["pace"]),
		Shooting:  normalization.AsInt(stats["shooting"]),
		Passing:   normalization.AsInt(stats["passing"]),
		Dribbling: normalization.AsInt(stats["dribbling"]),
		Defending: normalization.AsInt(stats["defending"]),
		Physical:  normalization.AsInt(stats["physical"]),
		XGPer90:   normalization.AsFloat64(stats["xg_per_90"]),
		XAPer90:   normalization.AsFloat64(stats["xa_per_90"]),
		PPDA:      normalization.AsFloat64(stats["ppda"]),
	}
	return player, true
}

// NormalizePlayerID trims an identifier supplied by a caller.
func NormalizePlayerID(raw string) string {
	return strings.TrimSpace(raw)
}
