package provision

import (
	"context"
	"fmt"
	"html"
	"regexp"
)

// DefaultPage is the vendor product page listing the mobile SDK releases.
const DefaultPage = "https://developer.oculus.com/downloads/package/oculus-mobile-sdk/{{.Version}}/"

// Source defines where the SDK archive is obtained from.
type Source interface {
	// Locate returns the url the archive can be downloaded from.
	// The template contains information about the release being provisioned.
	Locate(ctx context.Context, client *Client, template Template) (string, error)
}

// scraped implements [Source] for archives whose download link is only
// published inside a product page.
type scraped struct {
	pageformat string
	pattern    *regexp.Regexp
}

// ScrapedDownload creates a new Source that fetches the product page and looks
// for the first download link in it.
// The page url can contain template variables that will be resolved using the [Template]
// values, e.g. [DefaultPage].
func ScrapedDownload(page string) Source {
	return &scraped{
		pageformat: page,
		pattern:    DownloadLinkPattern,
	}
}

// ScrapedDownloadWithPattern is like [ScrapedDownload] but looks for links matching pattern.
func ScrapedDownloadWithPattern(page string, pattern *regexp.Regexp) Source {
	return &scraped{
		pageformat: page,
		pattern:    pattern,
	}
}

func (s *scraped) Locate(ctx context.Context, client *Client, template Template) (string, error) {
	page, err := template.Resolve(s.pageformat)
	if err != nil {
		return "", fmt.Errorf("failed to resolve page url: %w", err)
	}

	body, err := client.FetchPage(ctx, page)
	if err != nil {
		return "", err
	}

	link, err := ExtractLinkWith(body, s.pattern)
	if err != nil {
		return "", fmt.Errorf("failed to scrape %s: %w", page, err)
	}

	logdetail(fmt.Sprintf("found %s", link))

	// the link is taken from html source, so "&amp;" has to become "&" again
	return html.UnescapeString(link), nil
}

// direct implements [Source] for archives with a known url.
type direct struct {
	urlformat string
}

// DirectDownload creates a new Source that downloads the archive from a fixed url.
// The url can contain template variables that will be resolved using the [Template] values.
func DirectDownload(url string) Source {
	return &direct{
		urlformat: url,
	}
}

func (d *direct) Locate(_ context.Context, _ *Client, template Template) (string, error) {
	url, err := template.Resolve(d.urlformat)
	if err != nil {
		return "", fmt.Errorf("failed to resolve url: %w", err)
	}

	return url, nil
}
