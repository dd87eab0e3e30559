package label

import (
	"oss.terrastruct.com/vizcore/lib/geo"
)

// This is the space between an anchor and a label nudged off of it
const PADDING = 5

type Position int8

const (
	Unset Position = iota

	Center

	Above
	Below
	Left
	Right

	AboveLeft
	AboveRight
	BelowLeft
	BelowRight
)

// All lists every placeable position in the default preference order.
var All = []Position{Center, Above, Below, Right, Left, AboveRight, AboveLeft, BelowRight, BelowLeft}

func FromString(s string) Position {
	switch s {
	case "CENTER":
		return Center

	case "ABOVE":
		return Above
	case "BELOW":
		return Below
	case "LEFT":
		return Left
	case "RIGHT":
		return Right

	case "ABOVE_LEFT":
		return AboveLeft
	case "ABOVE_RIGHT":
		return AboveRight
	case "BELOW_LEFT":
		return BelowLeft
	case "BELOW_RIGHT":
		return BelowRight
	default:
		return Unset
	}
}

func (position Position) String() string {
	switch position {
	case Center:
		return "CENTER"

	case Above:
		return "ABOVE"
	case Below:
		return "BELOW"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"

	case AboveLeft:
		return "ABOVE_LEFT"
	case AboveRight:
		return "ABOVE_RIGHT"
	case BelowLeft:
		return "BELOW_LEFT"
	case BelowRight:
		return "BELOW_RIGHT"

	default:
		return ""
	}
}

func (position Position) MarshalText() ([]byte, error) {
	return []byte(position.String()), nil
}

func (position *Position) UnmarshalText(b []byte) error {
	*position = FromString(string(b))
	return nil
}

func (position Position) IsCenter() bool {
	return position == Center
}

func (position Position) Mirrored() Position {
	switch position {
	case Above:
		return Below
	case Below:
		return Above
	case Left:
		return Right
	case Right:
		return Left

	case AboveLeft:
		return BelowRight
	case AboveRight:
		return BelowLeft
	case BelowLeft:
		return AboveRight
	case BelowRight:
		return AboveLeft

	case Center:
		return Center
	default:
		return Unset
	}
}

type TextAnchor string

const (
	TextAnchorStart  TextAnchor = "start"
	TextAnchorMiddle TextAnchor = "middle"
	TextAnchorEnd    TextAnchor = "end"
)

// TextAnchor is the SVG text-anchor a label at this position is rendered with,
// i.e. the end of the text that faces the anchor.
func (position Position) TextAnchor() TextAnchor {
	switch position {
	case Left, AboveLeft, BelowLeft:
		return TextAnchorEnd
	case Right, AboveRight, BelowRight:
		return TextAnchorStart
	default:
		return TextAnchorMiddle
	}
}

// GetBoxOnBox returns the width x height label box placed at this position
// around box, pushed offset away from it. A zero sized box is a point anchor.
func (position Position) GetBoxOnBox(box *geo.Box, offset, width, height float64) *geo.Box {
	p := box.TopLeft.Copy()
	boxCenter := box.Center()

	switch position {
	case Center:
		p.X = boxCenter.X - width/2
		p.Y = boxCenter.Y - height/2

	case Above:
		p.X = boxCenter.X - width/2
		p.Y -= offset + height
	case Below:
		p.X = boxCenter.X - width/2
		p.Y += box.Height + offset
	case Left:
		p.X -= offset + width
		p.Y = boxCenter.Y - height/2
	case Right:
		p.X += box.Width + offset
		p.Y = boxCenter.Y - height/2

	case AboveLeft:
		p.X -= offset + width
		p.Y -= offset + height
	case AboveRight:
		p.X += box.Width + offset
		p.Y -= offset + height
	case BelowLeft:
		p.X -= offset + width
		p.Y += box.Height + offset
	case BelowRight:
		p.X += box.Width + offset
		p.Y += box.Height + offset
	default:
		return nil
	}

	return geo.NewBox(p, width, height)
}

// GetBoxOnPoint is GetBoxOnBox for a point anchor.
func (position Position) GetBoxOnPoint(p *geo.Point, offset, width, height float64) *geo.Box {
	return position.GetBoxOnBox(geo.NewBox(p.Copy(), 0, 0), offset, width, height)
}
