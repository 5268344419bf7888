package media

import (
	"regexp"
	"strconv"
)

// The separator accepts Unicode spaces such as the ideographic space U+3000.
var ordinalPattern = regexp.MustCompile(`^(\d+)[-_.\s\p{Z}]+(.+)$`)

// AlbumName is the result of parsing an album folder name.
type AlbumName struct {
	Order    int
	HasOrder bool
	Display  string
	Original string
}

// ParseAlbumName splits an optional leading ordinal off a folder name.
//
//	"01-Trip"       -> {1, true, "Trip", "01-Trip"}
//	"007_Long Name" -> {7, true, "Long Name", "007_Long Name"}
//	"Trip"          -> {0, false, "Trip", "Trip"}
//
// Digits without a following separator, or an ordinal too large for an int,
// leave the name unparsed.
func ParseAlbumName(name string) AlbumName {
	if m := ordinalPattern.FindStringSubmatch(name); m != nil {
		if order, err := strconv.Atoi(m[1]); err == nil {
			return AlbumName{Order: order, HasOrder: true, Display: m[2], Original: name}
		}
	}
	return AlbumName{Display: name, Original: name}
}
