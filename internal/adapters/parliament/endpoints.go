package parliament

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parliametrics/internal/core/normalize"
	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/services/seed/domain"
)

const (
	// current groups of the national assembly
	pathGroups = "/coll-list/bg/2"
	// members of one group on a given day
	pathMembers = "/coll-list-mp/bg/%d/2?date=%s"
	// sittings with a stenographic record in one month
	pathSittings = "/archive-period/bg/Pl_StenV/%d/%d/0/0"
	// one stenographic record
	pathTranscript = "/pl-sten/%d"

	dateLayout = "2006-01-02"
	// the API marks an open membership with this end date
	openEnd = "9999-12-31"
)

// Parties lists the current parliamentary groups with cleaned names
func (c *Client) Parties(ctx context.Context) ([]domain.Party, error) {
	var items []groupItem
	if err := c.get(ctx, "parliament.groups", pathGroups, &items); err != nil {
		return nil, err
	}
	out := make([]domain.Party, 0, len(items))
	for _, it := range items {
		name := CleanPartyName(it.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.Party{APIID: int64(it.ID), Name: name, Abbr: Abbreviation(name)})
	}
	return out, nil
}

// Members lists the members of a group on the first day of month
func (c *Client) Members(ctx context.Context, partyAPIID int64, month time.Time) ([]domain.Member, error) {
	path := fmt.Sprintf(pathMembers, partyAPIID, domain.MonthOf(month).Format(dateLayout))
	var list memberList
	if err := c.get(ctx, "parliament.members", path, &list); err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(list.Members))
	for _, it := range list.Members {
		m, err := it.member()
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "parliament.members group %d", partyAPIID)
		}
		out = append(out, m)
	}
	return out, nil
}

// Sittings lists the sittings of month in date order
func (c *Client) Sittings(ctx context.Context, month time.Time) ([]domain.Sitting, error) {
	m := domain.MonthOf(month)
	var items []sittingItem
	if err := c.get(ctx, "parliament.sittings", fmt.Sprintf(pathSittings, m.Year(), int(m.Month())), &items); err != nil {
		return nil, err
	}
	out := make([]domain.Sitting, 0, len(items))
	for _, it := range items {
		d, err := time.Parse(dateLayout, strings.TrimSpace(it.Date))
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "parliament.sittings bad date %q", it.Date)
		}
		out = append(out, domain.Sitting{ID: int64(it.ID), Date: d})
	}
	sortSittings(out)
	return out, nil
}

// Transcript returns the raw stenographic record of a sitting
func (c *Client) Transcript(ctx context.Context, sittingID int64) (string, error) {
	var it transcriptItem
	if err := c.get(ctx, "parliament.transcript", fmt.Sprintf(pathTranscript, sittingID), &it); err != nil {
		return "", err
	}
	return it.Body, nil
}

func (it memberItem) member() (domain.Member, error) {
	from, err := time.Parse(dateLayout, strings.TrimSpace(it.From))
	if err != nil {
		return domain.Member{}, fmt.Errorf("bad start date %q: %w", it.From, err)
	}
	m := domain.Member{
		First:  normalize.Title(it.First),
		Middle: normalize.Title(it.Middle),
		Last:   normalize.Title(it.Last),
		From:   from,
	}
	if to := strings.TrimSpace(it.To); to != "" && to != openEnd {
		d, err := time.Parse(dateLayout, to)
		if err != nil {
			return domain.Member{}, fmt.Errorf("bad end date %q: %w", it.To, err)
		}
		m.To = &d
	}
	return m, nil
}
