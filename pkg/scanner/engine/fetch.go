package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/types"
	"github.com/rs/zerolog/log"
	"resty.dev/v3"
)

// FetchError reports a failed page fetch: the request errored or the server
// answered with a non-success status.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// fetchPage issues a single GET and wraps the response body as one content
// unit. Inline script blocks are extracted separately so the code-risk pass
// can run against them while secret patterns see the raw body. No retries:
// a failed fetch fails the scan.
func fetchPage(rawURL string, timeout time.Duration) (types.ContentUnit, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetHeader("User-Agent", "keyhunter")

	resp, err := client.R().Get(rawURL)
	if err != nil {
		return types.ContentUnit{}, &FetchError{URL: rawURL, Err: err}
	}
	if resp.IsError() {
		return types.ContentUnit{}, &FetchError{URL: rawURL, Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}

	body := resp.String()
	log.Debug().Str("url", rawURL).Int("bytes", len(body)).Msg("Fetched page")

	return types.ContentUnit{
		Path:       rawURL,
		Text:       body,
		ScriptText: extractInlineScripts(body),
		Remote:     true,
	}, nil
}

// extractInlineScripts concatenates the contents of all <script> tags
// without a src attribute. Returns "" when the body is not parseable HTML.
func extractInlineScripts(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		log.Debug().Err(err).Msg("Failed parsing page HTML, skipping script extraction")
		return ""
	}

	var blocks []string
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		if _, external := s.Attr("src"); external {
			return
		}
		if text := s.Text(); strings.TrimSpace(text) != "" {
			blocks = append(blocks, text)
		}
	})
	return strings.Join(blocks, "\n")
}
