package folio

import (
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// latest returns the first n summaries, or all of them when n is zero.
func latest(list []content.ArticleSummary, n int) []content.ArticleSummary {
	if n <= 0 || n >= len(list) {
		return list
	}
	return list[:n]
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}

// pagePath maps a site path to the file a static build writes for it.
// "/" becomes index.html and "/blog/x" becomes blog/x.html.
func pagePath(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "" {
		return "index.html"
	}
	return p + ".html"
}
