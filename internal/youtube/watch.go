package youtube

import (
	"context"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	stealth "github.com/anatolykoptev/go-stealth"
)

var reAPIKey = regexp.MustCompile(`"INNERTUBE_API_KEY":\s*"([a-zA-Z0-9_-]+)"`)

const (
	consentAction   = "https://consent.youtube.com/s"
	consentSelector = `form[action="` + consentAction + `"]`
)

// watchPage fetches the watch page and returns its HTML together with the
// cookie header to send on follow-up requests. When YouTube answers with
// the EU consent form, the consent cookie is set and the page refetched once.
func (c *Client) watchPage(ctx context.Context, videoID string) (string, string, error) {
	page, err := c.fetchWatch(ctx, videoID, "")
	if err != nil {
		return "", "", err
	}
	if !strings.Contains(page, consentAction) {
		return html.UnescapeString(page), "", nil
	}

	value, ok := consentValue(page)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrConsentCookie, videoID)
	}
	cookie := "CONSENT=YES+" + value
	page, err = c.fetchWatch(ctx, videoID, cookie)
	if err != nil {
		return "", "", err
	}
	if _, again := consentValue(page); again {
		return "", "", fmt.Errorf("%w: %s", ErrConsentCookie, videoID)
	}
	return html.UnescapeString(page), cookie, nil
}

func (c *Client) fetchWatch(ctx context.Context, videoID, cookie string) (string, error) {
	data, err := c.do(ctx, "GET", c.baseURL+watchPath+videoID, nil, map[string]string{
		"User-Agent":      stealth.RandomUserAgent(),
		"Accept-Language": "en-US",
		"Cookie":          cookie,
	}, maxPageBytes)
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}
	return string(data), nil
}

// consentValue returns the "v" field of the consent form, if the page is one.
func consentValue(page string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", false
	}
	v, ok := doc.Find(consentSelector).Find(`input[name="v"]`).First().Attr("value")
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// extractAPIKey pulls the Innertube key out of a watch page. A page without
// a key is either a captcha interstitial or something unparsable.
func extractAPIKey(page string) (string, error) {
	if m := reAPIKey.FindStringSubmatch(page); m != nil {
		return m[1], nil
	}
	if isCaptcha(page) {
		return "", ErrRequestBlocked
	}
	return "", fmt.Errorf("%w: INNERTUBE_API_KEY not found", ErrDataUnparsable)
}

func isCaptcha(page string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return strings.Contains(page, `class="g-recaptcha"`)
	}
	return doc.Find(".g-recaptcha").Length() > 0
}
