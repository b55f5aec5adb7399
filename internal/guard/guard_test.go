package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseAndEncode(t *testing.T) {
	s := Parse("3,1,2")
	if len(s) != 3 || !s.Has(1) || !s.Has(2) || !s.Has(3) {
		t.Fatalf("unexpected set %v", s)
	}
	if got := s.Encode(); got != "1,2,3" {
		t.Fatalf("expected sorted encoding, got %q", got)
	}
}

func TestParseSkipsMalformedEntries(t *testing.T) {
	s := Parse(" 5, abc, ,7,1.5,")
	if len(s) != 2 || !s.Has(5) || !s.Has(7) {
		t.Fatalf("expected only valid ids kept, got %v", s)
	}
}

func TestParseEmptyMeansNeverVoted(t *testing.T) {
	if s := Parse(""); len(s) != 0 {
		t.Fatalf("empty value must yield empty set, got %v", s)
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if s := FromRequest(r); len(s) != 0 {
		t.Fatalf("missing cookie must yield empty set")
	}

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "4,8"})
	s := FromRequest(r)
	if !s.Has(4) || !s.Has(8) {
		t.Fatalf("expected ids from cookie, got %v", s)
	}
}

func TestCookieAttributes(t *testing.T) {
	s := Parse("9")
	s.Add(10)
	c := s.Cookie()

	if c.Name != CookieName {
		t.Fatalf("wrong cookie name %q", c.Name)
	}
	if c.Value != "9,10" {
		t.Fatalf("wrong cookie value %q", c.Value)
	}
	if c.Path != "/" {
		t.Fatalf("cookie must be site-wide, got path %q", c.Path)
	}
	// expiry on the order of a year
	min := time.Now().Add(360 * 24 * time.Hour)
	max := time.Now().Add(370 * 24 * time.Hour)
	if c.Expires.Before(min) || c.Expires.After(max) {
		t.Fatalf("expected ~1 year expiry, got %v", c.Expires)
	}
}
