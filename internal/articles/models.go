package articles

import "github.com/lukaszreszke93/posts/article"

type (
	Article       = article.Article
	NotFoundError = article.NotFoundError
)
