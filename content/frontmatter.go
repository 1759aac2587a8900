package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var headerFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// rawHeader is the recognized subset of an article's front matter as
// decoded. Dates and tags keep whatever shape the decoder produced; any other
// keys are ignored.
type rawHeader struct {
	Title         string `yaml:"title" toml:"title" json:"title"`
	PublishedDate any    `yaml:"publishedDate" toml:"publishedDate" json:"publishedDate"`
	PublishedAt   any    `yaml:"publishedAt" toml:"publishedAt" json:"publishedAt"`
	Summary       string `yaml:"summary" toml:"summary" json:"summary"`
	Tags          any    `yaml:"tags" toml:"tags" json:"tags"`
	Image         string `yaml:"image" toml:"image" json:"image"`
}

// header is the normalized front matter.
type header struct {
	Title         string   `json:"title"`
	PublishedDate string   `json:"publishedDate"`
	Summary       string   `json:"summary"`
	Tags          []string `json:"tags"`
	Image         string   `json:"image"`
}

var utf8BOM = []byte("\xef\xbb\xbf")

// parseHeader splits src into its decoded header and Markdown body.
func parseHeader(src []byte) (h header, body string, err error) {
	defer func() {
		if r := recover(); r != nil {
			h, body = header{}, ""
			err = fmt.Errorf("%w: %v", ErrInvalidFrontMatter, r)
		}
	}()

	var raw rawHeader
	rest, err := frontmatter.Parse(bytes.NewReader(bytes.TrimPrefix(src, utf8BOM)), &raw, headerFormats...)
	if err != nil {
		return header{}, "", fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	return raw.normalize(), strings.TrimLeft(string(rest), "\r\n"), nil
}

func (r rawHeader) normalize() header {
	date := dateString(r.PublishedDate)
	if date == "" {
		date = dateString(r.PublishedAt)
	}
	return header{
		Title:         strings.TrimSpace(r.Title),
		PublishedDate: date,
		Summary:       strings.TrimSpace(r.Summary),
		Tags:          normalizeTags(tagList(r.Tags)),
		Image:         strings.TrimSpace(r.Image),
	}
}

// dateString renders a decoded date value in a form parseDate accepts.
// TOML dates arrive as LocalDate or LocalDateTime, offset timestamps as
// time.Time.
func dateString(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(d)
	case time.Time:
		return d.Format(time.RFC3339)
	case toml.LocalDate:
		return d.String()
	case toml.LocalDateTime:
		return d.LocalDate.String()
	default:
		return strings.TrimSpace(fmt.Sprint(d))
	}
}

// tagList accepts a single tag or a list of tags.
func tagList(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if e != nil {
				out = append(out, fmt.Sprint(e))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(t)}
	}
}

// Validate checks the required keys. The returned validation.Errors is keyed
// by front matter key name.
func (h header) Validate() error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.Title, validation.Required),
		validation.Field(&h.PublishedDate, validation.Required),
	)
}

// parseDate accepts a calendar date or a timestamp and returns the calendar
// date at midnight UTC.
func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = normalizeTag(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
