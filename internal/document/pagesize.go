package document

import "strings"

// PageSize is a named physical page size
type PageSize string

// Orientation is the page orientation
type Orientation string

const (
	PageSizeA4     PageSize = "A4"
	PageSizeA3     PageSize = "A3"
	PageSizeA5     PageSize = "A5"
	PageSizeLetter PageSize = "Letter"
	PageSizeLegal  PageSize = "Legal"
	// PageSizeLong is the 8.5x13in folio ("long bond") sheet
	PageSizeLong PageSize = "Long"

	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Standard page sizes in points (1/72 inch), portrait
var pageDimensions = map[PageSize][2]float64{
	PageSizeA4:     {595.28, 841.89},
	PageSizeA3:     {841.89, 1190.55},
	PageSizeA5:     {419.53, 595.28},
	PageSizeLetter: {612, 792},
	PageSizeLegal:  {612, 1008},
	PageSizeLong:   {612, 936},
}

// Dimensions returns the width and height of a page size in the given
// orientation. Unknown sizes fall back to A4.
func Dimensions(size PageSize, orientation Orientation) (width, height float64) {
	d, ok := pageDimensions[size]
	if !ok {
		d = pageDimensions[PageSizeA4]
	}
	width, height = d[0], d[1]
	if orientation == OrientationLandscape {
		width, height = height, width
	}
	return width, height
}

// ParsePageSize resolves a page size name case-insensitively.
// "short" is accepted as an alias for Letter.
func ParsePageSize(name string) (PageSize, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "short" {
		return PageSizeLetter, true
	}
	for size := range pageDimensions {
		if strings.ToLower(string(size)) == n {
			return size, true
		}
	}
	return "", false
}

// ParseOrientation resolves an orientation name
func ParseOrientation(name string) (Orientation, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "portrait", "p", "":
		return OrientationPortrait, true
	case "landscape", "l":
		return OrientationLandscape, true
	}
	return "", false
}
