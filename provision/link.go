package provision

import (
	"errors"
	"regexp"
)

// DownloadLinkPattern matches the time limited, token authenticated download links
// the vendor embeds in its product pages. The query separator shows up html escaped
// in the page source, so both "&amp;" and a bare "&" are accepted.
var DownloadLinkPattern = regexp.MustCompile(
	`https://securecdn\.[0-9A-Za-z.-]+/binaries/download/\?id=[0-9]+&(?:amp;)?access_token=[0-9A-Za-z%]+`,
)

var ErrNoDownloadLink = errors.New("no download link found in page")

// ExtractLink returns the leftmost download link found in page, verbatim.
func ExtractLink(page string) (string, error) {
	return ExtractLinkWith(page, DownloadLinkPattern)
}

// ExtractLinkWith returns the leftmost match of pattern in page.
func ExtractLinkWith(page string, pattern *regexp.Regexp) (string, error) {
	loc := pattern.FindStringIndex(page)
	if loc == nil {
		return "", ErrNoDownloadLink
	}

	return page[loc[0]:loc[1]], nil
}
