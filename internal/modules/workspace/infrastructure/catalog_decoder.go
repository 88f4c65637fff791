package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/bytedance/sonic"

	"scoutWorkspace/internal/modules/workspace/domain"
	"scoutWorkspace/internal/shared/normalization"
)

// decodePlayers accepts a bare JSON array or an {"items"|"data": [...]} envelope.
// Rows without an id are skipped but still counted in Returned.
func decodePlayers(data []byte) (domain.CatalogPage, error) {
	var payload any
	if err := sonic.Unmarshal(data, &payload); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("decode catalog page: %w", err)
	}

	rows, ok := payload.([]any)
	if !ok {
		envelope, isMap := payload.(map[string]any)
		if !isMap {
			return domain.CatalogPage{}, fmt.Errorf("decode catalog page: unexpected payload %T", payload)
		}
		for _, key := range []string{"items", "data", "results"} {
			if list, found := envelope[key].([]any); found {
				rows, ok = list, true
				break
			}
		}
		if !ok {
			return domain.CatalogPage{}, fmt.Errorf("decode catalog page: envelope without player list")
		}
	}

	players := make([]domain.Player, 0, len(rows))
	for index, row := range rows {
		player, valid := domain.PlayerFromMap(normalization.MapFromPayload(row))
		if !valid {
			slog.Debug("catalog row skipped", slog.Int("index", index))
			continue
		}
		players = append(players, player)
	}
	return domain.CatalogPage{Players: players, Returned: len(rows)}, nil
}
