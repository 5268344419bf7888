// Package render produces the three page kinds of the gallery: the site
// index, one page per album and one page per media item.
//
// Pages are rendered from embedded html/template files. URLs come from the
// copier.URLs map of the current build; video cards always show the inline
// placeholder graphic. Album descriptions are Markdown rendered with
// goldmark.
package render
