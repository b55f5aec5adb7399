package settings

import "testing"

func TestRenderLabel(t *testing.T) {
	cases := []struct {
		label string
		count int64
		want  string
	}{
		{"Yes ({count})", 3, "Yes (3)"},
		{"Thumbs up", 5, "Thumbs up"},
		{"{count} votes, {count} voices", 2, "2 votes, 2 voices"},
		{"", 0, ""},
	}
	for _, c := range cases {
		if got := RenderLabel(c.label, c.count); got != c.want {
			t.Errorf("RenderLabel(%q, %d) = %q, want %q", c.label, c.count, got, c.want)
		}
	}
}

func TestFeedbackFor(t *testing.T) {
	s := Settings{
		FeedbackNegative:      true,
		FeedbackNegativeDescr: "What went wrong?",
	}

	if enabled, _ := s.FeedbackFor("positive"); enabled {
		t.Fatalf("positive feedback should be disabled")
	}
	enabled, descr := s.FeedbackFor("negative")
	if !enabled || descr != "What went wrong?" {
		t.Fatalf("expected negative feedback with description, got %v %q", enabled, descr)
	}
	if enabled, _ := s.FeedbackFor("bogus"); enabled {
		t.Fatalf("unknown type should never enable feedback")
	}
}

func TestEnabledForAndDefaults(t *testing.T) {
	s := Defaults()
	if !s.EnabledFor("post") {
		t.Fatalf("defaults should activate the post type")
	}
	if s.EnabledFor("page") {
		t.Fatalf("page should be inactive by default")
	}
	if s.BtnLabelPositive == "" || s.BtnLabelNegative == "" {
		t.Fatalf("default labels must not be empty")
	}
}
