package html

import (
	"encoding/base64"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	previewPolicyOnce sync.Once
	previewPolicy     *bluemonday.Policy
)

// Sanitize strips everything from fragment that the preview markup does not
// use. Media sources must be base64 image or video data URIs.
func Sanitize(fragment string) string {
	return previewSanitizer().Sanitize(fragment)
}

func previewSanitizer() *bluemonday.Policy {
	previewPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements(
			"section", "header", "span", "h2", "p", "div", "figure",
			"img", "video", "button",
		)
		policy.AllowAttrs("class").Globally()
		policy.AllowAttrs("data-content-type", "data-field").Globally()
		policy.AllowAttrs("type").OnElements("button")
		policy.AllowAttrs("alt").OnElements("img")
		policy.AllowAttrs("controls").OnElements("video")
		policy.AllowAttrs("src").OnElements("img", "video")
		policy.AllowURLSchemeWithCustomPolicy("data", allowMediaDataURI)

		previewPolicy = policy
	})
	return previewPolicy
}

func allowMediaDataURI(u *url.URL) bool {
	opaque := u.Opaque
	if !strings.HasPrefix(opaque, "image/") && !strings.HasPrefix(opaque, "video/") {
		return false
	}
	header, payload, ok := strings.Cut(opaque, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(payload)
	return err == nil
}
