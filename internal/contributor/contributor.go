// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package contributor resolves raw bibliographic author entries into typed
// person and organization contributors, enriching persons with identity
// registry data concurrently.
package contributor

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"unicode"

	"github.com/sourcegraph/conc/pool"

	"github.com/pdiddy/doi-curator/internal/orcid"
	"github.com/pdiddy/doi-curator/pkg/types"
)

// newPerson builds person contributors; tests replace it to exercise the
// drop path.
var newPerson = types.NewPerson

// IdentityLookup returns contact data for a bare person identifier. It
// must not fail: unknown or unreachable identifiers yield (nil, nil).
type IdentityLookup interface {
	Lookup(ctx context.Context, id string) (email, url *string)
}

// Resolver turns raw author entries into contributors.
type Resolver struct {
	Lookup IdentityLookup

	// Workers bounds concurrent resolutions. Zero means runtime.NumCPU().
	Workers int

	// Log receives warnings for dropped entries. Nil discards them.
	Log io.Writer
}

// Resolve classifies and enriches every entry. Each entry is resolved as
// an independent task on a pool scoped to this call; the output keeps
// input order. An entry whose construction fails is dropped and logged;
// a failed identity lookup only nulls that entry's email and url.
func (r *Resolver) Resolve(ctx context.Context, raw []types.RawContributor) []types.Contributor {
	if len(raw) == 0 {
		return nil
	}

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	slots := make([]*types.Contributor, len(raw))
	p := pool.New().WithMaxGoroutines(workers)
	for i, entry := range raw {
		p.Go(func() {
			c, err := r.resolveSafe(ctx, entry)
			if err != nil {
				r.warnf("warning: dropping contributor %d: %v\n", i, err)
				return
			}
			slots[i] = &c
		})
	}
	p.Wait()

	out := make([]types.Contributor, 0, len(raw))
	for _, c := range slots {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

// resolveSafe converts a panic during construction into an error so a
// single malformed entry cannot take down its siblings.
func (r *Resolver) resolveSafe(ctx context.Context, entry types.RawContributor) (c types.Contributor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("building contributor: %v", rec)
		}
	}()
	return r.resolveOne(ctx, entry), nil
}

func (r *Resolver) resolveOne(ctx context.Context, entry types.RawContributor) types.Contributor {
	if !entry.IsPerson() {
		return types.NewOrganization(
			types.StringPtr(entry.ROR),
			types.StringPtr(strings.TrimSpace(entry.Name)),
			types.StringPtr(entry.Email),
			types.StringPtr(entry.URL),
		)
	}

	var name *string
	if n, ok := DisplayName(entry.Family, entry.Given); ok {
		name = &n
	}

	var id, email, url *string
	if bare := orcid.BareID(entry.ORCID); bare != "" {
		id = &bare
		if r.Lookup != nil {
			email, url = r.lookupSafe(ctx, bare)
		}
	}

	return newPerson(id, name, email, url, entry.Affiliations)
}

// lookupSafe degrades a panicking lookup to (nil, nil) so the entry
// survives without contact data.
func (r *Resolver) lookupSafe(ctx context.Context, id string) (email, url *string) {
	defer func() {
		if rec := recover(); rec != nil {
			email, url = nil, nil
			r.warnf("warning: identity lookup %s: %v\n", id, rec)
		}
	}()
	return r.Lookup.Lookup(ctx, id)
}

func (r *Resolver) warnf(format string, args ...any) {
	if r.Log != nil {
		fmt.Fprintf(r.Log, format, args...)
	}
}

// DisplayName formats a person name as "Family, Given" with each part
// trimmed and title-cased independently. It reports false when either part
// is blank.
func DisplayName(family, given string) (string, bool) {
	family = titleCase(strings.TrimSpace(family))
	given = titleCase(strings.TrimSpace(given))
	if family == "" || given == "" {
		return "", false
	}
	return family + ", " + given, true
}

// titleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "o'neil-SMITH" becomes "O'Neil-Smith".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
