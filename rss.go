package folio

import (
	"encoding/xml"
	"io"
	"time"

	"github.com/eringen/folio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language,omitempty"`
	LastBuildDate string      `xml:"lastBuildDate,omitempty"`
	AtomLink      rssAtomLink `xml:"atom:link"`
	Items         []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// writeRSS encodes an RSS 2.0 feed of articles, newest first.
func writeRSS(w io.Writer, site SiteConfig, articles []content.ArticleSummary) error {
	base := site.URL
	items := make([]rssItem, 0, len(articles))
	for _, a := range articles {
		link := content.BuildURL(base, "blog", a.ID)
		items = append(items, rssItem{
			Title:       a.Title,
			Link:        link,
			Description: a.Summary,
			PubDate:     a.PublishedDate.Format(time.RFC1123Z),
			GUID:        link,
			Categories:  a.Tags,
		})
	}
	channel := rssChannel{
		Title:       site.Name,
		Link:        content.BuildURL(base),
		Description: site.Description,
		Language:    site.Lang,
		AtomLink: rssAtomLink{
			Href: content.BuildURL(base, "feed.xml"),
			Rel:  "self",
			Type: "application/rss+xml",
		},
		Items: items,
	}
	if len(articles) > 0 {
		channel.LastBuildDate = articles[0].PublishedDate.Format(time.RFC1123Z)
	}
	feed := rssXML{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: channel,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}
