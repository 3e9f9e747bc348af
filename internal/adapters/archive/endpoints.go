package archive

import (
	"context"

	"parliametrics/internal/services/browse/domain"
)

const (
	pathFilters  = "/speeches/filters"
	pathSpeeches = "/speeches"
)

// Filters fetches the filter catalog
func (c *Client) Filters(ctx context.Context) (domain.FilterCatalog, error) {
	var out domain.FilterCatalog
	if err := c.get(ctx, "archive.filters", pathFilters, nil, &out); err != nil {
		return domain.FilterCatalog{}, err
	}
	return out, nil
}

// Speeches fetches one page of speeches for the given ordered query
// the server order is preserved
func (c *Client) Speeches(ctx context.Context, q domain.Params) ([]domain.Speech, error) {
	var out []domain.Speech
	if err := c.get(ctx, "archive.speeches", pathSpeeches, q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Speech{}
	}
	return out, nil
}
