package publisher

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/lukaszreszke93/posts/internal/articles"
)

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
}

// ArticleContext carries the data contract for a single article page.
type ArticleContext struct {
	Site        SiteMetadata
	Article     *articles.Article
	Route       string
	GeneratedAt time.Time
}

// IndexContext carries the data contract for the article listing page.
type IndexContext struct {
	Site        SiteMetadata
	Articles    []*articles.Article
	Routes      map[string]string
	GeneratedAt time.Time
}

// TemplateRenderer turns page contexts into HTML. Hosts can supply their own
// implementation to control the published markup.
type TemplateRenderer interface {
	RenderArticle(ctx ArticleContext) ([]byte, error)
	RenderIndex(ctx IndexContext) ([]byte, error)
}

const defaultArticleTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Article.Title }} &mdash; {{ .Site.Title }}</title>
{{- with .Article.Description }}
<meta name="description" content="{{ deref . }}">
{{- end }}
<meta name="author" content="{{ or .Article.Author .Site.Author }}">
</head>
<body>
<article>
<h1>{{ .Article.Title }}</h1>
{{- if .Article.PublishedAt }}
<time datetime="{{ .Article.PublishedAt.Format "2006-01-02" }}">{{ .Article.PublishedAt.Format "January 2, 2006" }}</time>
{{- end }}
{{ bodyHTML .Article }}
{{- if .Article.Tags }}
<ul class="tags">
{{- range .Article.Tags }}
<li>{{ . }}</li>
{{- end }}
</ul>
{{- end }}
</article>
</body>
</html>
`

const defaultIndexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ .Site.Title }}</title>
{{- with .Site.Description }}
<meta name="description" content="{{ . }}">
{{- end }}
</head>
<body>
<h1>{{ .Site.Title }}</h1>
{{- range .Articles }}
<section>
<h2><a href="{{ index $.Routes .Slug }}">{{ .Title }}</a></h2>
{{- if .PublishedAt }}
<time datetime="{{ .PublishedAt.Format "2006-01-02" }}">{{ .PublishedAt.Format "January 2, 2006" }}</time>
{{- end }}
{{ teaserHTML . }}
</section>
{{- end }}
</body>
</html>
`

// HTMLRenderer is the default TemplateRenderer built on html/template.
type HTMLRenderer struct {
	article *template.Template
	index   *template.Template
}

// NewHTMLRenderer compiles the built-in templates.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	funcs := template.FuncMap{
		"deref": func(value *string) string {
			if value == nil {
				return ""
			}
			return *value
		},
		// Article bodies are rendered by the markdown pipeline; emit them as-is.
		"bodyHTML": func(a *articles.Article) template.HTML {
			return template.HTML(a.BodyHTML)
		},
		// Index entries show the teaser excerpt when the author cut one,
		// otherwise the full body.
		"teaserHTML": func(a *articles.Article) template.HTML {
			if a.ExcerptHTML != "" {
				return template.HTML(a.ExcerptHTML)
			}
			return template.HTML(a.BodyHTML)
		},
	}

	articleTmpl, err := template.New("article").Funcs(funcs).Parse(defaultArticleTemplate)
	if err != nil {
		return nil, fmt.Errorf("publisher: parse article template: %w", err)
	}
	indexTmpl, err := template.New("index").Funcs(funcs).Parse(defaultIndexTemplate)
	if err != nil {
		return nil, fmt.Errorf("publisher: parse index template: %w", err)
	}

	return &HTMLRenderer{article: articleTmpl, index: indexTmpl}, nil
}

// RenderArticle renders a single article page.
func (r *HTMLRenderer) RenderArticle(ctx ArticleContext) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.article.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("publisher: render article %s: %w", ctx.Article.Slug, err)
	}
	return buf.Bytes(), nil
}

// RenderIndex renders the listing page.
func (r *HTMLRenderer) RenderIndex(ctx IndexContext) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("publisher: render index: %w", err)
	}
	return buf.Bytes(), nil
}
