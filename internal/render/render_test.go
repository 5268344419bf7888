package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"gallery-builder/internal/config"
	"gallery-builder/internal/copier"
	"gallery-builder/internal/media"
	"gallery-builder/internal/mediatypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type descriptions map[string]string

func (d descriptions) Description(album string) string { return d[album] }

var modTime = time.Date(2023, 7, 14, 9, 30, 0, 0, time.Local)

func testSite() Site {
	return Site{
		Title:      "Test Gallery",
		Footer:     "Footer Co",
		FooterLink: "https://example.com",
		Language:   "zh-CN",
		Copyright:  "2020-2024",
		Fonts:      Fonts{Title: FontStack("brand"), Footer: FontStack(""), Global: FontStack("serif")},
	}
}

func newRenderer(t *testing.T, desc DescriptionSource) *Renderer {
	t.Helper()
	r, err := New(testSite(), desc)
	require.NoError(t, err)
	return r
}

func item(name string, kind mediatypes.FileType, size int64) media.Media {
	return media.Media{Name: name, Path: "/in/" + name, Type: kind, Size: size, ModTime: modTime}
}

func testAlbums() ([]media.Album, copier.URLs) {
	albums := []media.Album{
		{
			Name: "01-Trip", DisplayName: "Trip", Order: 1, HasOrder: true,
			Media: []media.Media{
				item("a #1.jpg", mediatypes.FileTypeImage, 4096),
				item("b.mov", mediatypes.FileTypeVideo, 2048),
			},
			Cover: media.Cover{Kind: media.CoverThumbnail},
		},
		{
			Name: "Clips", DisplayName: "Clips",
			Media: []media.Media{item("c.mkv", mediatypes.FileTypeVideo, 100)},
			Cover: media.Cover{Kind: media.CoverPlaceholder},
		},
		{
			Name: "My Photos", DisplayName: "My Photos",
			Media: []media.Media{item("d.png", mediatypes.FileTypeImage, 1500)},
			Cover: media.Cover{Kind: media.CoverConfigured, URL: "https://cdn.example.com/cover.jpg"},
		},
	}

	urls := copier.URLs{}
	for _, a := range albums {
		for i, m := range a.Media {
			urls[a.Key(i)] = copier.MediaURL(a.Name, m.Name)
		}
	}
	return albums, urls
}

func parse(t *testing.T, buf *bytes.Buffer) *html.Node {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}

func byID(doc *html.Node, id string) *html.Node {
	nodes := findAll(doc, func(n *html.Node) bool {
		v, _ := attr(n, "id")
		return v == id
	})
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

func TestPageNames(t *testing.T) {
	assert.Equal(t, "album_My_Photos.html", AlbumPageName("My Photos"))
	assert.Equal(t, "album_01-Trip.html", AlbumPageName("01-Trip"))

	name := MediaPageName("Trip", 3, "a.jpg")
	assert.Regexp(t, `^media_Trip_3_[0-9a-f]{8}\.html$`, name)
	assert.Equal(t, name, MediaPageName("Trip", 3, "a.jpg"))
	assert.NotEqual(t, name, MediaPageName("Trip", 4, "a.jpg"))
	assert.NotEqual(t, name, MediaPageName("Trip", 3, "b.jpg"))
}

func TestPageNamesForCatalog(t *testing.T) {
	albums := []media.Album{
		{Name: "01-Trip", Media: []media.Media{{Name: "a.jpg"}, {Name: "b.mp4"}}},
		{Name: "Street Life", Media: []media.Media{{Name: "c.png"}}},
	}

	assert.Equal(t, []string{
		AlbumPageName("01-Trip"),
		MediaPageName("01-Trip", 0, "a.jpg"),
		MediaPageName("01-Trip", 1, "b.mp4"),
		AlbumPageName("Street Life"),
		MediaPageName("Street Life", 0, "c.png"),
	}, PageNames(albums))
	assert.Empty(t, PageNames(nil))
}

func TestIsGalleryPage(t *testing.T) {
	assert.True(t, IsGalleryPage("album_Trip.html"))
	assert.True(t, IsGalleryPage(MediaPageName("Trip", 0, "a.jpg")))
	assert.False(t, IsGalleryPage("index.html"))
	assert.False(t, IsGalleryPage("album_notes.txt"))
	assert.False(t, IsGalleryPage("style.css"))
}

func TestFontStack(t *testing.T) {
	assert.Equal(t, brandFontStack, string(FontStack("brand")))
	assert.Equal(t, systemFontStack, string(FontStack("")))
	assert.Equal(t, "Georgia, serif", string(FontStack("Georgia, serif")))
}

func TestNewSite(t *testing.T) {
	s, err := config.Parse([]byte(`{"input": "a", "output": "b", "title": "T", "title-font": "brand"}`), config.FormatJSON)
	require.NoError(t, err)

	site := NewSite(s, "2024")
	assert.Equal(t, "T", site.Title)
	assert.Equal(t, "2024", site.Copyright)
	assert.Equal(t, FontStack("brand"), site.Fonts.Title)
	assert.Equal(t, FontStack(""), site.Fonts.Global)
}

func TestPagination(t *testing.T) {
	tests := []struct {
		total   int
		info    string
		hasNext bool
	}{
		{1, "显示 1-1 项，共 1 项", false},
		{9, "显示 1-9 项，共 9 项", false},
		{10, "显示 1-9 项，共 10 项", true},
		{0, "显示 0-0 项，共 0 项", false},
	}

	for _, tt := range tests {
		p := newPagination(tt.total)
		assert.Equal(t, tt.info, p.Info)
		assert.Equal(t, tt.hasNext, p.HasNext)
	}
}

func TestIndexPage(t *testing.T) {
	albums, urls := testAlbums()
	r := newRenderer(t, nil)

	var buf bytes.Buffer
	require.NoError(t, r.IndexPage(&buf, albums, urls))
	doc := parse(t, &buf)

	cards := findAll(doc, func(n *html.Node) bool { return hasClass(n, "album") })
	require.Len(t, cards, 3)

	links := findAll(doc, func(n *html.Node) bool {
		return n.Data == "a" && n.Parent != nil && hasClass(n.Parent, "album")
	})
	require.Len(t, links, 3)
	href, _ := attr(links[2], "href")
	assert.Equal(t, "album_My_Photos.html", href)

	imgs := findAll(doc, func(n *html.Node) bool { return n.Data == "img" })
	require.Len(t, imgs, 3)
	src0, _ := attr(imgs[0], "src")
	assert.Equal(t, "01-Trip/a%20%231.jpg", src0)
	src1, _ := attr(imgs[1], "src")
	assert.Equal(t, media.VideoPlaceholder, src1)
	src2, _ := attr(imgs[2], "src")
	assert.Equal(t, "https://cdn.example.com/cover.jpg", src2)

	counts := findAll(doc, func(n *html.Node) bool { return hasClass(n, "album-count") })
	require.Len(t, counts, 3)
	assert.Equal(t, "2 个文件", text(counts[0]))
	assert.Equal(t, "1 个视频", text(counts[1]))
	assert.Equal(t, "1 张图片", text(counts[2]))

	assert.Equal(t, "显示 1-3 项，共 3 项", text(byID(doc, "pagination-info")))
	_, disabled := attr(byID(doc, "next-btn"), "disabled")
	assert.True(t, disabled, "next button should be disabled with fewer than a page of albums")

	out := buf.String()
	assert.Contains(t, out, `<html lang="zh-CN">`)
	assert.Contains(t, out, "© 2020-2024")
	assert.Contains(t, out, "--title-font: "+brandFontStack)
	assert.Contains(t, out, `<script src="enhancements.js"></script>`)
}

func TestIndexPageMissingThumbnailURL(t *testing.T) {
	albums, _ := testAlbums()
	r := newRenderer(t, nil)

	var buf bytes.Buffer
	require.NoError(t, r.IndexPage(&buf, albums[:1], copier.URLs{}))
	assert.Contains(t, buf.String(), "无预览图")
}

func TestIndexPagePaginationEnabled(t *testing.T) {
	var albums []media.Album
	urls := copier.URLs{}
	for i := 0; i < 12; i++ {
		name := strings.Repeat("x", i+1)
		albums = append(albums, media.Album{
			Name: name, DisplayName: name,
			Media: []media.Media{item("a.jpg", mediatypes.FileTypeImage, 1)},
		})
		urls[media.Key{Album: name, Name: "a.jpg"}] = name + "/a.jpg"
	}

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t, nil).IndexPage(&buf, albums, urls))
	doc := parse(t, &buf)

	assert.Equal(t, "显示 1-9 项，共 12 项", text(byID(doc, "pagination-info")))
	_, disabled := attr(byID(doc, "next-btn"), "disabled")
	assert.False(t, disabled)
}

func TestAlbumPage(t *testing.T) {
	albums, urls := testAlbums()
	r := newRenderer(t, descriptions{"01-Trip": "A **sunny** week"})

	var buf bytes.Buffer
	require.NoError(t, r.AlbumPage(&buf, albums[0], urls))
	doc := parse(t, &buf)

	titles := findAll(doc, func(n *html.Node) bool { return n.Data == "title" })
	require.Len(t, titles, 1)
	assert.Equal(t, "Trip - Test Gallery", text(titles[0]))

	imgs := findAll(doc, func(n *html.Node) bool { return n.Data == "img" })
	require.Len(t, imgs, 2)
	src, _ := attr(imgs[0], "src")
	assert.Equal(t, "01-Trip/a%20%231.jpg", src)
	videoSrc, _ := attr(imgs[1], "src")
	assert.Equal(t, media.VideoPlaceholder, videoSrc, "video cards must use the placeholder")

	links := findAll(doc, func(n *html.Node) bool {
		return n.Data == "a" && n.Parent != nil && hasClass(n.Parent, "album")
	})
	require.Len(t, links, 2)
	href, _ := attr(links[1], "href")
	assert.Equal(t, MediaPageName("01-Trip", 1, "b.mov"), href)

	dates := findAll(doc, func(n *html.Node) bool { return hasClass(n, "album-count") })
	assert.Equal(t, "2023-07-14", text(dates[0]))

	strong := findAll(doc, func(n *html.Node) bool { return n.Data == "strong" })
	require.Len(t, strong, 1)
	assert.Equal(t, "sunny", text(strong[0]))

	assert.NotNil(t, byID(doc, "media-container"))
}

func TestMediaPageImage(t *testing.T) {
	albums, urls := testAlbums()
	r := newRenderer(t, nil)

	var buf bytes.Buffer
	info := media.ImageInfo{Width: 640, Height: 480, Taken: time.Date(2022, 1, 2, 3, 4, 0, 0, time.Local)}
	require.NoError(t, r.MediaPage(&buf, albums[0], 0, urls, info))
	doc := parse(t, &buf)

	imgs := findAll(doc, func(n *html.Node) bool { return n.Data == "img" })
	require.Len(t, imgs, 1)
	src, _ := attr(imgs[0], "src")
	assert.Equal(t, "01-Trip/a%20%231.jpg", src)

	size := findAll(doc, func(n *html.Node) bool { return hasClass(n, "media-size") })
	assert.Equal(t, "文件大小: 4 KB", text(size[0]))
	date := findAll(doc, func(n *html.Node) bool { return hasClass(n, "media-date") })
	assert.Equal(t, "2023-07-14 09:30", text(date[0]))

	out := buf.String()
	assert.Contains(t, out, "尺寸: 640 × 480")
	assert.Contains(t, out, "拍摄时间: 2022-01-02 03:04")
	assert.Contains(t, out, `const mediaUrl = "01-Trip/a%20%231.jpg";`)
	assert.Contains(t, out, `const mediaType = "image";`)

	crumbs := findAll(doc, func(n *html.Node) bool { return hasClass(n, "breadcrumb") })
	require.Len(t, crumbs, 1)
	assert.Equal(t, "首页 / Trip / a #1.jpg", text(crumbs[0]))
}

func TestMediaPageVideo(t *testing.T) {
	albums, urls := testAlbums()
	r := newRenderer(t, nil)

	tests := []struct {
		album int
		index int
		mime  string
	}{
		{0, 1, "video/quicktime"},
		{1, 0, "video/mp4"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, r.MediaPage(&buf, albums[tt.album], tt.index, urls, media.ImageInfo{}))
		doc := parse(t, &buf)

		sources := findAll(doc, func(n *html.Node) bool { return n.Data == "source" })
		require.Len(t, sources, 1)
		typ, _ := attr(sources[0], "type")
		assert.Equal(t, tt.mime, typ)

		assert.Empty(t, findAll(doc, func(n *html.Node) bool { return n.Data == "img" }))
		assert.Len(t, findAll(doc, func(n *html.Node) bool { return hasClass(n, "video-fallback") }), 1)
		assert.NotContains(t, buf.String(), "尺寸:")
	}
}

func TestMediaPageOutOfRange(t *testing.T) {
	albums, urls := testAlbums()
	r := newRenderer(t, nil)

	var buf bytes.Buffer
	assert.Error(t, r.MediaPage(&buf, albums[1], 5, urls, media.ImageInfo{}))
	assert.Zero(t, buf.Len())
}

func TestRenderEscapesNames(t *testing.T) {
	album := media.Album{
		Name: "<b>", DisplayName: "<script>alert(1)</script>",
		Media: []media.Media{item("x.jpg", mediatypes.FileTypeImage, 1)},
	}

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t, nil).AlbumPage(&buf, album, copier.URLs{}))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}
