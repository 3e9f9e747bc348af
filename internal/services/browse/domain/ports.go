package domain

import "context"

// ArchivePort is the remote archive the browse services read from
type ArchivePort interface {
	Filters(ctx context.Context) (FilterCatalog, error)
	Speeches(ctx context.Context, q Params) ([]Speech, error)
}

// DateSeeder receives the catalog date bounds after a successful load
// implementations only fill bounds the user has not set
type DateSeeder interface {
	SeedDates(first, last string)
}

// CatalogPort loads and exposes the filter catalog
type CatalogPort interface {
	Load(ctx context.Context) (FilterCatalog, error)
	Current() (FilterCatalog, bool)
	SearchSpeakers(term string) []SpeakerOption
	SearchParties(term string) []PartyOption
}

// QueryPort owns the selection and the current page of results
type QueryPort interface {
	SetSpeakerIDs(ids ...int64)
	SetPartyIDs(ids ...int64)
	SetLocation(t Tribune)
	SetDateFrom(d string)
	SetDateTo(d string)
	SetPage(p int)

	Selection() Selection
	BuildQuery(pageSize int) Params
	Fetch(ctx context.Context, pageSize int) error
	Speeches() []Speech
	Fetched() bool
}
