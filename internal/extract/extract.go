// Package extract pulls the readable text out of an HTML transcription page
// (Wikisource, sacred-texts.com, the Internet Classics Archive) so that it
// can be fed to the line classifiers exactly like a saved plain-text file.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// markdown syntax introduced by the HTML conversion that the plain-text
// classifiers must not see
var (
	reHeadingMarks  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	reEmphasisMarks = regexp.MustCompile(`(\*\*|\*|__|_)([^*_]+)(\*\*|\*|__|_)`)
	reLinkMarks     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	reExtraBlank    = regexp.MustCompile(`\n{3,}`)
)

// ToText extracts the main content of an HTML page as plain text.
//
// With a CSS selector, only matching elements are extracted; otherwise
// go-readability isolates the main article content first. baseURL gives
// readability context for resolving relative references and may be nil.
func ToText(content io.Reader, selector string, baseURL *url.URL) (string, error) {
	var markdown string
	var err error
	if selector != "" {
		markdown, err = extractWithSelector(content, selector)
	} else {
		markdown, err = extractMainContent(content, baseURL)
	}
	if err != nil {
		return "", err
	}
	return flatten(markdown), nil
}

// extractMainContent uses go-readability to isolate the article body.
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	return convertToMarkdown(article.Content)
}

// extractWithSelector extracts only the elements matching a CSS selector.
func extractWithSelector(content io.Reader, selector string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			// wrap each element to preserve structure
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return convertToMarkdown(strings.Join(htmlParts, "\n"))
}

// convertToMarkdown converts an HTML string to Markdown, the intermediate
// representation that preserves heading and paragraph structure.
func convertToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, nil)

	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}

// flatten strips the markdown syntax from converted text, leaving the plain
// lines the transcriptions use: headings keep their own line, emphasis and
// link syntax disappear, blank-line runs collapse.
func flatten(markdown string) string {
	text := reHeadingMarks.ReplaceAllString(markdown, "")
	text = reEmphasisMarks.ReplaceAllString(text, "$2")
	text = reLinkMarks.ReplaceAllString(text, "$1")
	text = reExtraBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
