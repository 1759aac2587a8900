package folio

import (
	"fmt"
	"net/http"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
	"github.com/eringen/folio/views"
)

const relatedLimit = 3

func (a *App) page(path string, meta content.PageMeta) views.Page {
	return views.Page{Site: a.Config.Site.View(), Meta: meta, Path: path}
}

func (a *App) homePage(ix *content.Index) views.HomePage {
	site := a.Config.Site
	p := a.page("/", content.PageMeta{
		Description:  site.Description,
		CanonicalURL: content.BuildURL(site.URL),
		OGType:       "website",
		Image:        content.BuildURL(site.URL, "og", content.SiteCardID+".png"),
	})
	p.JSONLD = views.WebsiteJSONLD(p.Site)
	return views.HomePage{
		Page:     p,
		Greeting: views.Greeting(a.now()),
		Articles: latest(ix.List(), a.Config.Content.HomeLimit),
	}
}

func (a *App) blogPage(ix *content.Index, tag string) views.BlogPage {
	site := a.Config.Site
	title := "Blog"
	if tag != "" {
		title = fmt.Sprintf("Articles tagged %q", tag)
	}
	return views.BlogPage{
		Page: a.page("/blog", content.PageMeta{
			Title:        title,
			Description:  site.Description,
			CanonicalURL: content.BuildURL(site.URL, "blog"),
			OGType:       "website",
			Image:        content.BuildURL(site.URL, "og", content.SiteCardID+".png"),
		}),
		Articles: ix.ListByTag(tag),
		Tag:      tag,
		Tags:     ix.Tags(),
	}
}

func (a *App) articlePage(ix *content.Index, art content.Article) (views.ArticlePage, error) {
	body, err := markdown.ToHTML(art.Body)
	if err != nil {
		return views.ArticlePage{}, fmt.Errorf("render %s: %w", art.SourcePath, err)
	}
	meta := content.ArticleMeta(art, a.Config.Site.URL)
	p := a.page(art.Link(), meta)
	p.JSONLD = views.BlogPostingJSONLD(p.Site, art, meta)
	return views.ArticlePage{
		Page:    p,
		Article: art,
		Body:    body,
		Related: views.RelatedArticles(art, ix.List(), relatedLimit),
	}, nil
}

func (a *App) statusPage(code int, path string) views.StatusPage {
	title := http.StatusText(code)
	return views.StatusPage{
		Page: a.page(path, content.PageMeta{
			Title:       title,
			Description: a.Config.Site.Description,
			OGType:      "website",
		}),
		Code: code,
	}
}
