package render

import (
	"fmt"
	"strings"
)

// docStyle is the paragraph and run formatting for one kind of DOCX paragraph. The
// palette follows print.css.
type docStyle struct {
	Bold       bool
	Italic     bool
	Caps       bool
	HalfPoints int    // w:sz
	Color      string // hex RGB without '#'
	SpaceAfter int    // twentieths of a point
	IndentLeft int    // twentieths of a point
	RuleBelow  bool
}

const (
	inkColor    = "111111"
	mutedColor  = "4B5563"
	accentColor = "1F2937"
	ruleColor   = "D1D5DB"
)

var docStyles = map[string]docStyle{
	"name":           {Bold: true, HalfPoints: 40, Color: inkColor},
	"title":          {HalfPoints: 26, Color: mutedColor, SpaceAfter: 120},
	"contact":        {HalfPoints: 18, Color: mutedColor, SpaceAfter: 200},
	"sectionHeading": {Bold: true, Caps: true, HalfPoints: 22, Color: accentColor, SpaceAfter: 80, RuleBelow: true},
	"roleLine":       {Bold: true, HalfPoints: 21},
	"meta":           {Italic: true, HalfPoints: 19, Color: mutedColor},
	"body":           {HalfPoints: 20, SpaceAfter: 60},
	"bullet":         {HalfPoints: 20, IndentLeft: 360},
}

func (s docStyle) paragraphProperties() string {
	var b strings.Builder
	if s.RuleBelow {
		fmt.Fprintf(&b, `<w:pBdr><w:bottom w:val="single" w:sz="4" w:space="1" w:color="%s"/></w:pBdr>`, ruleColor)
	}
	if s.SpaceAfter > 0 {
		fmt.Fprintf(&b, `<w:spacing w:after="%d"/>`, s.SpaceAfter)
	}
	if s.IndentLeft > 0 {
		fmt.Fprintf(&b, `<w:ind w:left="%d"/>`, s.IndentLeft)
	}
	if b.Len() == 0 {
		return ""
	}
	return "<w:pPr>" + b.String() + "</w:pPr>"
}

// runProperties emits w:rPr children in schema order.
func (s docStyle) runProperties() string {
	var b strings.Builder
	if s.Bold {
		b.WriteString("<w:b/>")
	}
	if s.Italic {
		b.WriteString("<w:i/>")
	}
	if s.Caps {
		b.WriteString("<w:caps/>")
	}
	if s.Color != "" {
		fmt.Fprintf(&b, `<w:color w:val="%s"/>`, s.Color)
	}
	if s.HalfPoints > 0 {
		fmt.Fprintf(&b, `<w:sz w:val="%d"/>`, s.HalfPoints)
	}
	if b.Len() == 0 {
		return ""
	}
	return "<w:rPr>" + b.String() + "</w:rPr>"
}
