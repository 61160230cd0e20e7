package workbook

import (
	"github.com/xuri/excelize/v2"
)

// DefaultCodeFormat pads the first-column codes to four digits
const DefaultCodeFormat = "0000"

// Styler registers the cell styles used by the cleaning stages
type Styler struct {
	File *excelize.File

	CenterStyle int // Centered, wrapped text
	CodeStyle   int // CenterStyle plus the code number format

	centered map[int]int // Source style id to its centered variant
}

// NewStyler creates a Styler and registers its styles on f.
// An empty codeFormat falls back to DefaultCodeFormat.
func NewStyler(f *excelize.File, codeFormat string) (*Styler, error) {
	if codeFormat == "" {
		codeFormat = DefaultCodeFormat
	}
	s := &Styler{File: f, centered: make(map[int]int)}
	var err error

	s.CenterStyle, err = f.NewStyle(&excelize.Style{
		Alignment: centered(),
	})
	if err != nil {
		return nil, err
	}

	s.CodeStyle, err = f.NewStyle(&excelize.Style{
		Alignment:    centered(),
		CustomNumFmt: &codeFormat,
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Centered returns a style that keeps everything of the style id except its
// alignment, which becomes centered and wrapped
func (s *Styler) Centered(id int) (int, error) {
	if id == 0 {
		return s.CenterStyle, nil
	}
	if out, ok := s.centered[id]; ok {
		return out, nil
	}

	style, err := s.File.GetStyle(id)
	if err != nil {
		return 0, err
	}
	style.Alignment = centered()
	out, err := s.File.NewStyle(style)
	if err != nil {
		return 0, err
	}
	s.centered[id] = out
	return out, nil
}

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true}
}
