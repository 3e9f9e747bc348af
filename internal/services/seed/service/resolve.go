package service

import (
	"context"
	"strings"
	"time"

	"parliametrics/internal/core/normalize"
	"parliametrics/internal/services/seed/domain"
	"parliametrics/internal/services/seed/transcript"
)

// resolver maps a transcript label and annotation to an affiliation
// it owns an in memory view of parties and affiliations that grows as
// unmatched speakers are added
type resolver struct {
	parties  map[string]domain.PartyRow
	byName   map[string][]domain.AffiliationRow
	affs     []domain.AffiliationRow
	roles    map[string]int64
	external int64
	recent   *recentLabels
}

func newResolver(parties []domain.PartyRow, affs []domain.AffiliationRow, depth int) *resolver {
	r := &resolver{
		parties: map[string]domain.PartyRow{},
		byName:  map[string][]domain.AffiliationRow{},
		roles:   map[string]int64{},
		recent:  newRecentLabels(depth),
	}
	roleParty := map[int64]domain.Role{}
	for _, p := range parties {
		for _, k := range []string{normalize.Fold(p.Name), normalize.Fold(p.Abbr)} {
			if _, taken := r.parties[k]; k != "" && !taken {
				r.parties[k] = p
			}
		}
		if p.Name == domain.ExternalParty {
			r.external = p.ID
		}
		for _, role := range domain.Roles {
			if p.Name == role.Label {
				roleParty[p.ID] = role
			}
		}
	}
	for _, a := range affs {
		r.add(a)
		if role, ok := roleParty[a.PartyID]; ok && a.First == "" && a.Last == role.Label {
			r.roles[role.Keyword] = a.ID
		}
	}
	return r
}

// add indexes a under every short and long form of its speaker's name
func (r *resolver) add(a domain.AffiliationRow) {
	r.affs = append(r.affs, a)
	names := []string{
		a.First + " " + a.Middle,
		a.First + " " + a.Last,
		a.Middle + " " + a.Last,
		a.First + " " + a.Middle + " " + a.Last,
		a.SpeakerName,
		a.First,
		a.Middle,
		a.Last,
	}
	seen := map[string]bool{}
	for _, n := range names {
		k := normalize.Fold(n)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		r.byName[k] = append(r.byName[k], a)
	}
}

func (r *resolver) resetSitting() { r.recent.reset() }

// affiliation picks the affiliation for one segment and reports whether the
// segment continues a recent speaker's turn
func (r *resolver) affiliation(ctx context.Context, repo domain.StorageRepo, seg transcript.Segment, day time.Time) (int64, bool, error) {
	key := normalize.Fold(seg.Speaker)

	if seg.Annotation == "" {
		if id, ok := r.recent.get(key); ok {
			r.recent.add(key, id)
			return id, true, nil
		}
	}

	party, hasParty := r.party(transcript.PartyLabel(seg.Annotation))
	speaker, hasSpeaker := r.speaker(key, party, hasParty, day)

	var (
		id    int64
		found bool
	)
	if hasSpeaker && hasParty {
		id, found = r.find(speaker, party.ID)
	}
	if !found {
		id, found = r.role(key)
	}
	if !found && hasSpeaker {
		id, found = r.latest(speaker)
	}
	if !found {
		var err error
		if id, err = r.addExternal(ctx, repo, seg.Speaker); err != nil {
			return 0, false, err
		}
	}
	r.recent.add(key, id)
	return id, false, nil
}

// party matches a label by exact folded name or abbreviation, then by the
// longest known key the label contains or is contained in
func (r *resolver) party(label string) (domain.PartyRow, bool) {
	k := normalize.Fold(label)
	if k == "" {
		return domain.PartyRow{}, false
	}
	if p, ok := r.parties[k]; ok {
		return p, true
	}
	var (
		best    domain.PartyRow
		bestLen int
	)
	for pk, p := range r.parties {
		if len(pk) < 3 || len(pk) < bestLen {
			continue
		}
		if !strings.Contains(k, pk) && (len(k) < 3 || !strings.Contains(pk, k)) {
			continue
		}
		if len(pk) > bestLen || p.ID < best.ID {
			best, bestLen = p, len(pk)
		}
	}
	return best, bestLen > 0
}

// speaker picks one speaker id among the name's candidates
// a leading role word is dropped when the full label matches nobody
func (r *resolver) speaker(key string, party domain.PartyRow, hasParty bool, day time.Time) (int64, bool) {
	cands := r.byName[key]
	if len(cands) == 0 {
		if _, rest, ok := strings.Cut(key, " "); ok && r.isRoleWord(key) {
			cands = r.byName[rest]
		}
	}
	if len(cands) == 0 {
		return 0, false
	}
	if len(cands) == 1 {
		return cands[0].SpeakerID, true
	}
	if hasParty {
		if id, ok := unique(cands, func(a domain.AffiliationRow) bool { return a.PartyID == party.ID && a.Covers(day) }); ok {
			return id, true
		}
	}
	if id, ok := unique(cands, func(a domain.AffiliationRow) bool { return a.Covers(day) }); ok {
		return id, true
	}
	return newestStart(cands).SpeakerID, true
}

func (r *resolver) isRoleWord(key string) bool {
	first, _, _ := strings.Cut(key, " ")
	for _, role := range domain.Roles {
		if first == role.Keyword {
			return true
		}
	}
	return false
}

func (r *resolver) find(speakerID, partyID int64) (int64, bool) {
	for _, a := range r.affs {
		if a.SpeakerID == speakerID && a.PartyID == partyID {
			return a.ID, true
		}
	}
	return 0, false
}

func (r *resolver) role(key string) (int64, bool) {
	for _, role := range domain.Roles {
		if id, ok := r.roles[role.Keyword]; ok && strings.Contains(key, role.Keyword) {
			return id, true
		}
	}
	return 0, false
}

func (r *resolver) latest(speakerID int64) (int64, bool) {
	var own []domain.AffiliationRow
	for _, a := range r.affs {
		if a.SpeakerID == speakerID {
			own = append(own, a)
		}
	}
	if len(own) == 0 {
		return 0, false
	}
	return newestStart(own).ID, true
}

// addExternal files an unknown label under the external party
func (r *resolver) addExternal(ctx context.Context, repo domain.StorageRepo, label string) (int64, error) {
	name := normalize.Title(label)
	key := normalize.Fold(name)
	for _, a := range r.byName[key] {
		if a.PartyID == r.external && a.First == "" {
			return a.ID, nil
		}
	}
	sid, _, err := repo.EnsureLabelSpeaker(ctx, name)
	if err != nil {
		return 0, err
	}
	id, _, err := repo.UpsertAffiliation(ctx, sid, r.external, nil, nil)
	if err != nil {
		return 0, err
	}
	r.add(domain.AffiliationRow{ID: id, SpeakerID: sid, PartyID: r.external, SpeakerName: name, Last: name})
	return id, nil
}

// unique returns the only speaker among the kept candidates
func unique(cands []domain.AffiliationRow, keep func(domain.AffiliationRow) bool) (int64, bool) {
	ids := map[int64]bool{}
	var id int64
	for _, a := range cands {
		if keep(a) {
			ids[a.SpeakerID] = true
			id = a.SpeakerID
		}
	}
	return id, len(ids) == 1
}

// newestStart prefers the latest start date; an open start counts as oldest
func newestStart(as []domain.AffiliationRow) domain.AffiliationRow {
	best := as[0]
	for _, a := range as[1:] {
		if a.Start != nil && (best.Start == nil || a.Start.After(*best.Start)) {
			best = a
		}
	}
	return best
}

// recentLabels remembers the affiliation of the last few labels
type recentLabels struct {
	depth int
	keys  []string
	ids   []int64
}

func newRecentLabels(depth int) *recentLabels { return &recentLabels{depth: depth} }

func (c *recentLabels) add(key string, id int64) {
	c.keys = append(c.keys, key)
	c.ids = append(c.ids, id)
	if len(c.keys) > c.depth {
		c.keys = c.keys[1:]
		c.ids = c.ids[1:]
	}
}

func (c *recentLabels) get(key string) (int64, bool) {
	for i := len(c.keys) - 1; i >= 0; i-- {
		if c.keys[i] == key {
			return c.ids[i], true
		}
	}
	return 0, false
}

func (c *recentLabels) reset() {
	c.keys = c.keys[:0]
	c.ids = c.ids[:0]
}
