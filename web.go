package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// fetchWebSection downloads an HTML page and converts it to markdown for use
// as an appended document section. The returned title comes from the page's
// <title> element and is informational only; it may be empty.
func fetchWebSection(pageURL string) (content, title string, err error) {
	res, err := http.Get(pageURL)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", "", fmt.Errorf("failed to fetch %s: status code %d", pageURL, res.StatusCode)
	}
	contentType := res.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return "", "", fmt.Errorf("unsupported content type %q for %s", contentType, pageURL)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read response body from %s: %w", pageURL, err)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(string(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to convert HTML to markdown for %s: %w", pageURL, err)
	}

	if doc, derr := goquery.NewDocumentFromReader(strings.NewReader(string(body))); derr == nil {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return markdown, title, nil
}
