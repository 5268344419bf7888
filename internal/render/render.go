package render

import (
	"bytes"
	"crypto/md5"
	"embed"
	"encoding/hex"
	"fmt"
	"html/template"
	"io"
	"strings"

	"gallery-builder/internal/config"
	"gallery-builder/internal/copier"
	"gallery-builder/internal/logging"
	"gallery-builder/internal/media"
	"gallery-builder/internal/mediatypes"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageSize is the number of cards enhancements.js shows per page.
const PageSize = 9

const (
	systemFontStack = "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif"
	brandFontStack  = "'Brand', -apple-system, BlinkMacSystemFont, sans-serif"
)

// FontStack turns a font setting into a CSS font-family value. "brand"
// selects the bundled font, "" the system stack; anything else is used as is.
func FontStack(value string) template.CSS {
	switch strings.TrimSpace(value) {
	case "":
		return template.CSS(systemFontStack)
	case "brand":
		return template.CSS(brandFontStack)
	default:
		return template.CSS(value)
	}
}

// Fonts holds the three configured font stacks.
type Fonts struct {
	Title  template.CSS
	Footer template.CSS
	Global template.CSS
}

// Site is the data shared by every page.
type Site struct {
	Title      string
	Footer     string
	FooterLink string
	Language   string
	Copyright  string
	Fonts      Fonts
}

// NewSite builds the shared page data from settings and the resolved
// copyright text.
func NewSite(s *config.Settings, copyright string) Site {
	return Site{
		Title:      s.Title,
		Footer:     s.Footer,
		FooterLink: s.FooterLink,
		Language:   s.Language,
		Copyright:  copyright,
		Fonts: Fonts{
			Title:  FontStack(s.TitleFont),
			Footer: FontStack(s.FooterFont),
			Global: FontStack(s.GlobalFont),
		},
	}
}

// DescriptionSource returns the Markdown description of an album folder.
type DescriptionSource interface {
	Description(album string) string
}

// Renderer produces the index, album and media pages. Render methods never
// modify the catalog and are safe for concurrent use.
type Renderer struct {
	site         Site
	tmpl         *template.Template
	md           goldmark.Markdown
	descriptions DescriptionSource
}

// New parses the embedded templates. descriptions may be nil.
func New(site Site, descriptions DescriptionSource) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Renderer{
		site:         site,
		tmpl:         tmpl,
		md:           goldmark.New(),
		descriptions: descriptions,
	}, nil
}

// AlbumPageName returns the file name of an album's page.
func AlbumPageName(album string) string {
	return "album_" + strings.ReplaceAll(album, " ", "_") + ".html"
}

// MediaPageName returns the file name of the page for the index-th media item
// of an album. The name only changes when the file name or its position does.
func MediaPageName(album string, index int, fileName string) string {
	sum := md5.Sum([]byte(fileName))
	return fmt.Sprintf("media_%s_%d_%s.html", album, index, hex.EncodeToString(sum[:])[:8])
}

// PageNames lists the album and media pages generated for albums, in
// catalog order.
func PageNames(albums []media.Album) []string {
	var names []string
	for _, album := range albums {
		names = append(names, AlbumPageName(album.Name))
		for i, m := range album.Media {
			names = append(names, MediaPageName(album.Name, i, m.Name))
		}
	}
	return names
}

// IsGalleryPage reports whether name looks like an album or media page.
func IsGalleryPage(name string) bool {
	if !strings.HasSuffix(name, ".html") {
		return false
	}
	return strings.HasPrefix(name, "album_") || strings.HasPrefix(name, "media_")
}

type crumb struct {
	Label string
	Link  string
}

type card struct {
	Link     string
	Image    template.URL
	Alt      string
	Title    string
	Subtitle string
}

type pagination struct {
	PageSize int
	Total    int
	Info     string
	HasNext  bool
}

func newPagination(total int) pagination {
	shown := total
	if shown > PageSize {
		shown = PageSize
	}
	first := 1
	if total == 0 {
		first = 0
	}
	return pagination{
		PageSize: PageSize,
		Total:    total,
		Info:     fmt.Sprintf("显示 %d-%d 项，共 %d 项", first, shown, total),
		HasNext:  total > PageSize,
	}
}

type mediaView struct {
	Name       string
	Type       mediatypes.FileType
	URL        template.URL
	URLString  string
	MimeType   string
	Modified   string
	SizeKB     int64
	Dimensions string
	Taken      string
}

// IsVideo reports whether the media item is a video.
func (m *mediaView) IsVideo() bool {
	return m.Type == mediatypes.FileTypeVideo
}

type page struct {
	Site            Site
	Title           string
	Description     string
	Breadcrumb      []crumb
	Heading         string
	DescriptionHTML template.HTML
	ContainerID     string
	Cards           []card
	Pagination      pagination
	Media           *mediaView
}

// IndexPage writes the site index listing every album.
func (r *Renderer) IndexPage(w io.Writer, albums []media.Album, urls copier.URLs) error {
	cards := make([]card, 0, len(albums))
	for _, album := range albums {
		cards = append(cards, card{
			Link:     AlbumPageName(album.Name),
			Image:    coverImage(album, urls),
			Alt:      album.DisplayName,
			Title:    album.DisplayName,
			Subtitle: countText(album),
		})
	}

	return r.execute(w, "index", page{
		Site:        r.site,
		Title:       r.site.Title,
		Description: "图片画廊 - " + r.site.Title,
		Breadcrumb:  []crumb{{Label: "首页", Link: "index.html"}, {Label: "所有相册"}},
		ContainerID: "albums-container",
		Cards:       cards,
		Pagination:  newPagination(len(albums)),
	})
}

// AlbumPage writes the page listing every media item of an album.
func (r *Renderer) AlbumPage(w io.Writer, album media.Album, urls copier.URLs) error {
	cards := make([]card, 0, album.Count())
	for i, m := range album.Media {
		image := template.URL(media.VideoPlaceholder)
		if !m.IsVideo() {
			image = template.URL(urls.Get(album.Name, m.Name))
		}
		cards = append(cards, card{
			Link:     MediaPageName(album.Name, i, m.Name),
			Image:    image,
			Alt:      m.Name,
			Title:    m.Name,
			Subtitle: m.ModTime.Format("2006-01-02"),
		})
	}

	return r.execute(w, "album", page{
		Site:            r.site,
		Title:           album.DisplayName + " - " + r.site.Title,
		Description:     "相册 - " + album.DisplayName,
		Breadcrumb:      []crumb{{Label: "首页", Link: "index.html"}, {Label: album.DisplayName}},
		Heading:         album.DisplayName,
		DescriptionHTML: r.description(album.Name),
		ContainerID:     "media-container",
		Cards:           cards,
		Pagination:      newPagination(album.Count()),
	})
}

// MediaPage writes the detail page of the index-th media item of an album.
// info carries optional image probe results; the zero value omits them.
func (r *Renderer) MediaPage(w io.Writer, album media.Album, index int, urls copier.URLs, info media.ImageInfo) error {
	if index < 0 || index >= album.Count() {
		return fmt.Errorf("media index %d out of range for album %s", index, album.Name)
	}
	m := album.Media[index]
	mediaURL := urls.Get(album.Name, m.Name)

	view := &mediaView{
		Name:      m.Name,
		Type:      m.Type,
		URL:       template.URL(mediaURL),
		URLString: mediaURL,
		Modified:  m.ModTime.Format("2006-01-02 15:04"),
		SizeKB:    m.Size / 1024,
	}
	if m.IsVideo() {
		view.MimeType = mediatypes.GetVideoMimeType(m.Ext())
	}
	if info.HasDimensions() {
		view.Dimensions = fmt.Sprintf("%d × %d", info.Width, info.Height)
	}
	if !info.Taken.IsZero() {
		view.Taken = info.Taken.Format("2006-01-02 15:04")
	}

	return r.execute(w, "media", page{
		Site:        r.site,
		Title:       m.Name + " - " + album.DisplayName + " - " + r.site.Title,
		Description: "媒体文件 - " + m.Name,
		Breadcrumb: []crumb{
			{Label: "首页", Link: "index.html"},
			{Label: album.DisplayName, Link: AlbumPageName(album.Name)},
			{Label: m.Name},
		},
		Media: view,
	})
}

// execute renders into a buffer first so a template error never leaves a
// half-written page behind.
func (r *Renderer) execute(w io.Writer, name string, data page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s page: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) description(album string) template.HTML {
	if r.descriptions == nil {
		return ""
	}
	source := r.descriptions.Description(album)
	if strings.TrimSpace(source) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		logging.Warn("Album %s: cannot render description: %v", album, err)
		return ""
	}
	return template.HTML(buf.String())
}

// coverImage resolves the album card image. A thumbnail whose copy failed has
// no URL and renders as "no preview".
func coverImage(album media.Album, urls copier.URLs) template.URL {
	switch album.Cover.Kind {
	case media.CoverConfigured:
		return template.URL(album.Cover.URL)
	case media.CoverPlaceholder:
		return template.URL(media.VideoPlaceholder)
	default:
		return template.URL(urls.Get(album.Name, album.Thumbnail().Name))
	}
}

func countText(album media.Album) string {
	hasImages, hasVideos := album.Kinds()
	switch {
	case hasImages && hasVideos:
		return fmt.Sprintf("%d 个文件", album.Count())
	case hasVideos:
		return fmt.Sprintf("%d 个视频", album.Count())
	default:
		return fmt.Sprintf("%d 张图片", album.Count())
	}
}
