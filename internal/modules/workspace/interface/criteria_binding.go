package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/gorilla/schema"

	"scoutWorkspace/internal/modules/workspace/domain"
)

var criteriaDecoder = func() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	decoder.ZeroEmpty(true)
	return decoder
}()

// criteriaFromQuery reads q, pos, league, club, max_age, min_val and max_val.
func criteriaFromQuery(values url.Values) (domain.Criteria, error) {
	var criteria domain.Criteria
	if err := criteriaDecoder.Decode(&criteria, values); err != nil {
		return domain.Criteria{}, fmt.Errorf("decode criteria: %w", err)
	}
	return criteria.Normalize(), nil
}

// criteriaFromJSON accepts either the criteria object itself or
// {"criteria": {...}}.
func criteriaFromJSON(data []byte) (domain.Criteria, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.DefaultCriteria(), nil
	}
	var wrapped struct {
		Criteria *domain.Criteria `json:"criteria"`
	}
	if err := sonic.Unmarshal(data, &wrapped); err == nil && wrapped.Criteria != nil {
		return wrapped.Criteria.Normalize(), nil
	}
	var criteria domain.Criteria
	if err := sonic.Unmarshal(data, &criteria); err != nil {
		return domain.Criteria{}, fmt.Errorf("decode criteria: %w", err)
	}
	return criteria.Normalize(), nil
}

// criteriaFromRequest prefers a JSON body and falls back to query parameters.
func criteriaFromRequest(body io.Reader, query url.Values) (domain.Criteria, error) {
	var data []byte
	if body != nil {
		read, err := io.ReadAll(io.LimitReader(body, 1<<16))
		if err != nil {
			return domain.Criteria{}, fmt.Errorf("read criteria: %w", err)
		}
		data = bytes.TrimSpace(read)
	}
	if len(data) > 0 {
		return criteriaFromJSON(data)
	}
	return criteriaFromQuery(query)
}
