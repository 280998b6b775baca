// Package widget describes widget content and presents it on a surface.
package widget

import (
	"fmt"
	"strings"
)

// Size is one of the fixed presentation sizes a widget can be shown at.
type Size int

const (
	SizeSmall Size = iota
	SizeMedium
	SizeLarge
	SizeAccessoryCircular
	SizeAccessoryRectangular
	SizeAccessoryInline
)

var sizeNames = map[Size]string{
	SizeSmall:                "small",
	SizeMedium:               "medium",
	SizeLarge:                "large",
	SizeAccessoryCircular:    "accessoryCircular",
	SizeAccessoryRectangular: "accessoryRectangular",
	SizeAccessoryInline:      "accessoryInline",
}

// HomeSizes are the sizes offered for home screen widgets.
var HomeSizes = []Size{SizeSmall, SizeMedium, SizeLarge}

// AccessorySizes are the sizes offered for lock screen widgets.
var AccessorySizes = []Size{SizeAccessoryCircular, SizeAccessoryRectangular, SizeAccessoryInline}

func (s Size) String() string {
	if n, ok := sizeNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Size(%d)", int(s))
}

// Label is the menu label for s, e.g. "Medium".
func (s Size) Label() string {
	n := s.String()
	return strings.ToUpper(n[:1]) + n[1:]
}

// ParseSize accepts a size name case-insensitively.
func ParseSize(name string) (Size, error) {
	for s, n := range sizeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("invalid size %q (use small, medium, large, accessoryCircular, accessoryRectangular, accessoryInline)", name)
}

// Style holds the size-dependent layout values.
type Style struct {
	TitleFontSize int
	RowSpacing    int
	Padding       int
	// Width is the terminal column budget used when previewing.
	Width int
}

// StyleFor returns the layout for a size.
func StyleFor(s Size) Style {
	switch s {
	case SizeSmall:
		return Style{TitleFontSize: 13, RowSpacing: 4, Padding: 4, Width: 24}
	case SizeMedium:
		return Style{TitleFontSize: 20, RowSpacing: 8, Padding: 10, Width: 48}
	case SizeLarge:
		return Style{TitleFontSize: 20, RowSpacing: 8, Padding: 10, Width: 48}
	case SizeAccessoryCircular:
		return Style{TitleFontSize: 12, Width: 10}
	case SizeAccessoryRectangular:
		return Style{TitleFontSize: 12, Width: 20}
	case SizeAccessoryInline:
		return Style{TitleFontSize: 12, Width: 30}
	default:
		return StyleFor(SizeMedium)
	}
}
