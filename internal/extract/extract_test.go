package extract_test

import (
	"strings"
	"testing"

	"github.com/ecrawley/stoa/internal/extract"
)

const samplePage = `<html><head><title>Meditations</title></head><body>
<article>
<h1>BOOK ONE</h1>
<p>From my grandfather Verus I learned good morals and the government of my temper.</p>
<p>From the reputation and remembrance of my father, modesty and a <em>manly</em> character.</p>
</article>
</body></html>`

func TestToTextWithSelector(t *testing.T) {
	text, err := extract.ToText(strings.NewReader(samplePage), "article", nil)
	if err != nil {
		t.Fatalf("ToText: %v", err)
	}

	if !strings.Contains(text, "BOOK ONE") {
		t.Errorf("heading lost: %q", text)
	}
	if !strings.Contains(text, "From my grandfather Verus") {
		t.Errorf("paragraph lost: %q", text)
	}
	for _, mark := range []string{"#", "*", "_", "<"} {
		if strings.Contains(text, mark) {
			t.Errorf("markup %q leaked into plain text: %q", mark, text)
		}
	}
}

func TestToTextSelectorMiss(t *testing.T) {
	_, err := extract.ToText(strings.NewReader(samplePage), "#nope", nil)
	if err == nil {
		t.Fatal("expected an error when the selector matches nothing")
	}
}
