// Package guard implements the client-held duplicate-vote token: a cookie
// listing the post ids this browser already voted on. It is a UX nicety,
// not an integrity boundary; a missing cookie means "never voted".
package guard

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CookieName matches the cookie used by the original widget.
const CookieName = "rpluswprating_votes"

// TTL is the cookie lifetime, roughly one year.
const TTL = 365 * 24 * time.Hour

type Set map[int64]struct{}

// Parse decodes a comma-joined id list. Malformed entries are skipped.
func Parse(raw string) Set {
	s := make(Set)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// FromRequest reads the guard cookie; absence yields an empty set.
func FromRequest(r *http.Request) Set {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return make(Set)
	}
	return Parse(c.Value)
}

func (s Set) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id int64) {
	s[id] = struct{}{}
}

// Encode renders the set as a sorted comma-joined list.
func (s Set) Encode() string {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// Cookie builds the Set-Cookie value carrying the updated guard.
func (s Set) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    s.Encode(),
		Path:     "/",
		Expires:  time.Now().Add(TTL),
		SameSite: http.SameSiteLaxMode,
	}
}
