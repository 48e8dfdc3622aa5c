package work

import (
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Kind
	}{
		{
			name:  "letters",
			lines: []string{"front matter", "THE EPISTLES OF SENECA", "I. ON SAVING TIME"},
			want:  Letters,
		},
		{
			name:  "meditations",
			lines: []string{"The Meditations", "BOOK ONE", "From my grandfather Verus"},
			want:  Meditations,
		},
		{
			name:  "discourses",
			lines: []string{"The Discourses of Epictetus, tr. by P.E. Matheson", "PREFACE"},
			want:  Discourses,
		},
		{
			name:  "shortness",
			lines: []string{"ON THE SHORTNESS OF LIFE", "ADDRESSED TO PAULINUS"},
			want:  Shortness,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(tt.lines)
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	_, err := Detect([]string{"an unrelated text", "with no anchors"})
	if err == nil {
		t.Error("expected error for unidentifiable text")
	}
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("epigrams"))
	if err == nil || !strings.Contains(err.Error(), "unknown work") {
		t.Errorf("expected unknown-work error, got %v", err)
	}
}

func TestNewAllKinds(t *testing.T) {
	for _, kind := range Kinds {
		p, err := New(kind)
		if err != nil {
			t.Fatalf("New(%v): %v", kind, err)
		}
		if p.Kind != kind {
			t.Errorf("profile kind = %v, want %v", p.Kind, kind)
		}
		if p.OutputName == "" {
			t.Errorf("profile %v has no output name", kind)
		}
		if p.Skeleton == nil || p.Regions == nil {
			t.Errorf("profile %v is incomplete", kind)
		}
	}
}

func TestAllUpper(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"OF THE THINGS IN OUR POWER", true},
		{"Of the things", false},
		{"123", false},
		{"", false},
		{"FROM ARRIAN'S BOOKS", true},
	}
	for _, tt := range tests {
		if got := allUpper(tt.in); got != tt.want {
			t.Errorf("allUpper(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
