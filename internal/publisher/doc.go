// Package publisher renders the visible article corpus into a static site:
// one HTML page per article, an index page, syndication feeds, a sitemap,
// and a robots.txt.
package publisher
