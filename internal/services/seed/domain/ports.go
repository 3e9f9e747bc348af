package domain

import (
	"context"
	"time"
)

// RunnerPort is the public port of the seed module
type RunnerPort interface {
	// SeedParties upserts every group the source lists
	SeedParties(ctx context.Context) (Report, error)

	// SeedMembers upserts role speakers, then members and affiliations of
	// every stored group for each month in [from, to]
	SeedMembers(ctx context.Context, from, to time.Time) (Report, error)

	// SeedSpeeches parses every sitting newer than the latest stored speech
	SeedSpeeches(ctx context.Context) (Report, error)
}

// SourcePort reads the parliament's public API
type SourcePort interface {
	Parties(ctx context.Context) ([]Party, error)
	Members(ctx context.Context, partyAPIID int64, month time.Time) ([]Member, error)
	Sittings(ctx context.Context, month time.Time) ([]Sitting, error)
	Transcript(ctx context.Context, sittingID int64) (string, error)
}

// StorageRepo writes the archive tables
type StorageRepo interface {
	// UpsertParty inserts by name or refreshes the api id of an existing row
	UpsertParty(ctx context.Context, p Party) (id int64, created bool, err error)

	// Parties lists every stored party
	Parties(ctx context.Context) ([]PartyRow, error)

	// UpsertSpeaker inserts by full name or refreshes the display name
	UpsertSpeaker(ctx context.Context, m Member) (id int64, created bool, err error)

	// EnsureLabelSpeaker finds or creates a speaker known only by a label
	EnsureLabelSpeaker(ctx context.Context, label string) (id int64, created bool, err error)

	// UpsertAffiliation inserts by (speaker, party) or refreshes the end date
	UpsertAffiliation(ctx context.Context, speakerID, partyID int64, start, end *time.Time) (id int64, created bool, err error)

	// Affiliations lists every affiliation with its speaker names
	Affiliations(ctx context.Context) ([]AffiliationRow, error)

	// LastSpeechDate is nil on an empty archive
	LastSpeechDate(ctx context.Context) (*time.Time, error)

	// InsertSpeech skips a speech already stored for the same day and affiliation
	InsertSpeech(ctx context.Context, s Speech) (id int64, inserted bool, err error)

	// AppendSpeech adds text to the end of a stored speech
	AppendSpeech(ctx context.Context, id int64, text string) error
}
