package domain

// Cursor tracks pagination progress for one result list. HasMore is a hint:
// a page that comes back full keeps it true, so a total that is an exact
// multiple of the page size costs one extra empty fetch.
type Cursor struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	HasMore bool `json:"hasMore"`
}

// NewCursor returns a reset cursor. A non-positive limit falls back to DefaultPageSize.
func NewCursor(limit int) Cursor {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return Cursor{Offset: 0, Limit: limit, HasMore: true}
}

// Reset rewinds to the first page.
func (c Cursor) Reset() Cursor {
	return NewCursor(c.Limit)
}

// Advance moves the offset forward by pageSize.
func (c Cursor) Advance(pageSize int) Cursor {
	if pageSize <= 0 {
		pageSize = c.pageSize()
	}
	c.Offset += pageSize
	return c
}

// UpdateHasMore records the size of the page a fetch returned.
func (c Cursor) UpdateHasMore(returned, pageSize int) Cursor {
	if pageSize <= 0 {
		pageSize = c.pageSize()
	}
	c.HasMore = returned >= pageSize
	return c
}

func (c Cursor) pageSize() int {
	if c.Limit <= 0 {
		return DefaultPageSize
	}
	return c.Limit
}
