package folio

import (
	"encoding/xml"
	"io"

	"github.com/eringen/folio/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func writeSitemap(w io.Writer, base string, articles []content.ArticleSummary) error {
	urls := []sitemapURL{
		{Loc: content.BuildURL(base)},
		{Loc: content.BuildURL(base, "blog")},
	}
	if len(articles) > 0 {
		// The listing changes whenever the newest article does.
		urls[1].LastMod = articles[0].PublishedDate.Format(content.DateLayout)
	}
	for _, a := range articles {
		urls = append(urls, sitemapURL{
			Loc:     content.BuildURL(base, "blog", a.ID),
			LastMod: a.PublishedDate.Format(content.DateLayout),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}

// writeRobots writes a permissive robots.txt pointing at the sitemap.
func writeRobots(w io.Writer, base string) error {
	_, err := io.WriteString(w, "User-agent: *\nAllow: /\n\nSitemap: "+content.BuildURL(base, "sitemap.xml")+"\n")
	return err
}
