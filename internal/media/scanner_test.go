package media

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gallery-builder/internal/mediatypes"
)

type coverMap map[string]string

func (c coverMap) Cover(album string) string { return c[album] }

// makeTree creates album folders under a temp root. Each value lists
// file names to create inside the folder.
func makeTree(t *testing.T, albums map[string][]string) string {
	t.Helper()
	root := t.TempDir()
	for album, files := range albums {
		dir := filepath.Join(root, album)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
		for _, name := range files {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("data-"+name), 0o644); err != nil {
				t.Fatalf("write %s: %v", name, err)
			}
		}
	}
	return root
}

func albumNames(albums []Album) []string {
	names := make([]string, len(albums))
	for i, a := range albums {
		names[i] = a.Name
	}
	return names
}

func TestScanOrdering(t *testing.T) {
	root := makeTree(t, map[string][]string{
		"10-B": {"a.jpg"},
		"A":    {"a.jpg"},
		"02-C": {"a.jpg"},
	})

	albums, err := NewScanner(root, nil).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"02-C", "10-B", "A"}
	if got := albumNames(albums); !reflect.DeepEqual(got, want) {
		t.Errorf("album order = %v, want %v", got, want)
	}
}

func TestSortAlbums(t *testing.T) {
	albums := []Album{
		{Name: "Zoo", DisplayName: "Zoo"},
		{Name: "2-b", DisplayName: "b", Order: 2, HasOrder: true},
		{Name: "Apple", DisplayName: "Apple"},
		{Name: "2-a", DisplayName: "a", Order: 2, HasOrder: true},
		{Name: "1-z", DisplayName: "z", Order: 1, HasOrder: true},
	}

	SortAlbums(albums)

	want := []string{"1-z", "2-a", "2-b", "Apple", "Zoo"}
	if got := albumNames(albums); !reflect.DeepEqual(got, want) {
		t.Errorf("SortAlbums order = %v, want %v", got, want)
	}
}

func TestScanAlbumContents(t *testing.T) {
	root := makeTree(t, map[string][]string{
		"01-Trip": {"c.png", "a.JPG", "notes.txt", "b.mp4"},
	})
	if err := os.Mkdir(filepath.Join(root, "01-Trip", "nested.jpg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "loose.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	albums, err := NewScanner(root, nil).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(albums) != 1 {
		t.Fatalf("got %d albums, want 1", len(albums))
	}

	album := albums[0]
	if album.DisplayName != "Trip" || album.Order != 1 || !album.HasOrder {
		t.Errorf("album name fields = %+v", album)
	}

	var names []string
	for _, m := range album.Media {
		names = append(names, m.Name)
	}
	if want := []string{"a.JPG", "b.mp4", "c.png"}; !reflect.DeepEqual(names, want) {
		t.Errorf("media = %v, want %v", names, want)
	}

	first := album.Media[0]
	if first.Type != mediatypes.FileTypeImage {
		t.Errorf("a.JPG type = %s, want image", first.Type)
	}
	if album.Media[1].Type != mediatypes.FileTypeVideo {
		t.Errorf("b.mp4 type = %s, want video", album.Media[1].Type)
	}
	if first.Size != int64(len("data-a.JPG")) {
		t.Errorf("a.JPG size = %d", first.Size)
	}
	if first.Path != filepath.Join(root, "01-Trip", "a.JPG") {
		t.Errorf("a.JPG path = %s", first.Path)
	}
	if album.Cover.Kind != CoverThumbnail {
		t.Errorf("cover kind = %s, want thumbnail", album.Cover.Kind)
	}
}

func TestScanDropsEmptyAlbums(t *testing.T) {
	root := makeTree(t, map[string][]string{
		"Empty":    {},
		"TextOnly": {"readme.txt"},
		"Photos":   {"a.jpg"},
	})

	albums, err := NewScanner(root, nil).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if got := albumNames(albums); !reflect.DeepEqual(got, []string{"Photos"}) {
		t.Errorf("albums = %v, want [Photos]", got)
	}
}

func TestScanCoverResolution(t *testing.T) {
	root := makeTree(t, map[string][]string{
		"Remote":   {"a.jpg"},
		"Rooted":   {"a.jpg"},
		"Relative": {"a.jpg"},
		"Video":    {"a.mp4", "b.jpg"},
		"Plain":    {"a.jpg", "b.mp4"},
	})

	covers := coverMap{
		"Remote":   "https://cdn.example.com/cover.jpg",
		"Rooted":   "/covers/rooted.jpg",
		"Relative": "covers/relative.jpg",
	}

	albums, err := NewScanner(root, covers).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := map[string]Cover{
		"Remote":   {Kind: CoverConfigured, URL: "https://cdn.example.com/cover.jpg"},
		"Rooted":   {Kind: CoverConfigured, URL: "covers/rooted.jpg"},
		"Relative": {Kind: CoverConfigured, URL: "covers/relative.jpg"},
		"Video":    {Kind: CoverPlaceholder},
		"Plain":    {Kind: CoverThumbnail},
	}
	for _, album := range albums {
		if album.Cover != want[album.Name] {
			t.Errorf("%s cover = %+v, want %+v", album.Name, album.Cover, want[album.Name])
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	root := makeTree(t, map[string][]string{
		"01-One":   {"b.jpg", "a.mp4"},
		"Two":      {"x.png"},
		"03 Three": {"z.gif", "y.webp"},
	})
	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	if err := os.Chtimes(filepath.Join(root, "Two", "x.png"), old, old); err != nil {
		t.Fatal(err)
	}

	scanner := NewScanner(root, coverMap{"Two": "/c.jpg"})
	first, err := scanner.Scan()
	if err != nil {
		t.Fatalf("first Scan() error = %v", err)
	}
	second, err := scanner.Scan()
	if err != nil {
		t.Fatalf("second Scan() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("catalogs differ between scans:\n%+v\n%+v", first, second)
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewScanner(filepath.Join(t.TempDir(), "missing"), nil).Scan()
	if !os.IsNotExist(err) {
		t.Errorf("Scan() error = %v, want not-exist", err)
	}
}

func TestScanFollowsSymlinkedAlbums(t *testing.T) {
	root := makeTree(t, map[string][]string{})
	target := makeTree(t, map[string][]string{"real": {"a.jpg"}})

	if err := os.Symlink(filepath.Join(target, "real"), filepath.Join(root, "Linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	albums, err := NewScanner(root, nil).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if got := albumNames(albums); !reflect.DeepEqual(got, []string{"Linked"}) {
		t.Errorf("albums = %v, want [Linked]", got)
	}
}

func TestNormalizeCoverPath(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"http://example.com/a.jpg", "http://example.com/a.jpg"},
		{"https://example.com/a.jpg", "https://example.com/a.jpg"},
		{"/covers/a.jpg", "covers/a.jpg"},
		{"covers/a.jpg", "covers/a.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeCoverPath(tt.input); got != tt.want {
				t.Errorf("NormalizeCoverPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func BenchmarkParseAlbumName(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ParseAlbumName("007_Long Name")
	}
}
