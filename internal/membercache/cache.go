// Package membercache snapshots the member reference dataset for a run.
package membercache

import (
	"context"
	"fmt"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// Cache is an in-memory index of members by bioguide ID. It is built
// once per run, before any member votes are processed, and read from a
// single control flow thereafter.
type Cache struct {
	byBioguide map[string]domain.Member
}

// Build loads the full member set and indexes it. One store read per
// run regardless of how many votes are processed.
func Build(ctx context.Context, store ports.MemberStore) (*Cache, error) {
	members, err := store.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}

	index := make(map[string]domain.Member, len(members))
	for _, m := range members {
		if m.BioguideID == "" {
			continue
		}
		index[m.BioguideID] = m
	}

	return &Cache{byBioguide: index}, nil
}

// Lookup resolves a bioguide ID. A miss is a per-record failure for the
// caller, never fatal to the run.
func (c *Cache) Lookup(bioguideID string) (domain.Member, bool) {
	m, ok := c.byBioguide[bioguideID]
	return m, ok
}

// Len reports how many members were indexed.
func (c *Cache) Len() int {
	return len(c.byBioguide)
}
