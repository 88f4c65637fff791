package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorMapperMap(t *testing.T) {
	errEmpty := errors.New("empty name")
	errUpstream := errors.New("upstream down")

	mapper := NewErrorMapper().
		WithMapping(errEmpty, http.StatusUnprocessableEntity, "name required").
		WithMappings(ErrorMapping{Error: errUpstream, Status: http.StatusBadGateway, Message: "catalog unavailable"}).
		WithDefault(http.StatusTeapot, "odd")

	cases := []struct {
		err    error
		status int
	}{
		{err: nil, status: http.StatusOK},
		{err: fmt.Errorf("save: %w", errEmpty), status: http.StatusUnprocessableEntity},
		{err: errUpstream, status: http.StatusBadGateway},
		{err: fmt.Errorf("fetch: %w", context.DeadlineExceeded), status: http.StatusGatewayTimeout},
		{err: errors.New("other"), status: http.StatusTeapot},
	}

	for _, tc := range cases {
		if got := mapper.Map(tc.err); got.Status != tc.status {
			t.Fatalf("Map(%v) status = %d, expected %d", tc.err, got.Status, tc.status)
		}
	}
}
