package infrastructure

import (
	"net/url"
	"strings"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/domain"
)

const (
	topProspectsPath  = "/players/prospects/top"
	filterPlayersPath = "/players/filter"
	savedSearchesPath = "/scouting/searches"
	watchlistPath     = "/watchlist"
	categoryPath      = "/watchlist/category"
)

var catalogPaths = map[domain.Listing]string{
	domain.ListingTopProspects: topProspectsPath,
	domain.ListingFiltered:     filterPlayersPath,
}

// resourcePath joins escaped segments onto base. An empty segment yields
// port.ErrRemoteNotFound since the remote could never resolve it.
func resourcePath(base string, segments ...string) (string, error) {
	var builder strings.Builder
	builder.WriteString(strings.TrimRight(strings.TrimSpace(base), "/"))
	for _, segment := range segments {
		trimmed := strings.TrimSpace(segment)
		if trimmed == "" {
			return "", port.ErrRemoteNotFound
		}
		builder.WriteString("/")
		builder.WriteString(url.PathEscape(trimmed))
	}
	return builder.String(), nil
}
