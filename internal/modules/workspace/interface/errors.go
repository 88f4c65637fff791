package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"scoutWorkspace/internal/modules/workspace/application/port"
	"scoutWorkspace/internal/modules/workspace/application/usecase"
	"scoutWorkspace/internal/shared/httputil"
)

var errInvalidPayload = errors.New("invalid payload")

var errorMapper = httputil.NewErrorMapper().
	WithMappings(
		httputil.ErrorMapping{Error: errInvalidPayload, Status: http.StatusBadRequest, Message: "invalid payload"},
		httputil.ErrorMapping{Error: usecase.ErrEmptySearchName, Status: http.StatusBadRequest, Message: "search name is required"},
		httputil.ErrorMapping{Error: usecase.ErrInvalidCategory, Status: http.StatusBadRequest, Message: "category name is required"},
		httputil.ErrorMapping{Error: usecase.ErrMissingPlayerID, Status: http.StatusBadRequest, Message: "player id is required"},
		httputil.ErrorMapping{Error: usecase.ErrDefaultCategoryPermanent, Status: http.StatusConflict, Message: "the default category cannot be deleted"},
		httputil.ErrorMapping{Error: usecase.ErrFetchInFlight, Status: http.StatusConflict, Message: "a fetch is already in progress"},
		httputil.ErrorMapping{Error: usecase.ErrCriteriaChanged, Status: http.StatusConflict, Message: "criteria changed"},
		httputil.ErrorMapping{Error: usecase.ErrSavedSearchNotFound, Status: http.StatusNotFound, Message: "saved search not found"},
		httputil.ErrorMapping{Error: port.ErrRemoteForbidden, Status: http.StatusForbidden, Message: "forbidden"},
		httputil.ErrorMapping{Error: port.ErrRemoteNotFound, Status: http.StatusNotFound, Message: "not found"},
		httputil.ErrorMapping{Error: port.ErrShortlistRejected, Status: http.StatusUnprocessableEntity, Message: "shortlist change rejected"},
	).
	WithDefault(http.StatusBadGateway, "remote request failed")

func httpError(c echo.Context, err error) error {
	info := errorMapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("workspace trigger failed", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err))
	} else {
		slog.Warn("workspace trigger rejected", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err))
	}
	return echo.NewHTTPError(info.Status, info.Message)
}
