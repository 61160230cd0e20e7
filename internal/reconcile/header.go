package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"cell-recon/internal/model"

	"golang.org/x/text/unicode/norm"
)

// syntheticMarker is the placeholder text used for generated column names
const syntheticMarker = "Unnamed"

var syntheticPattern = regexp.MustCompile(`^Unnamed:\s*\d+$`)

// SyntheticName returns the generated display name for an unlabeled column
func SyntheticName(pos int) string {
	return fmt.Sprintf("%s: %d", syntheticMarker, pos)
}

// IsSynthetic reports whether a display name was generated by SyntheticName
func IsSynthetic(name string) bool {
	return syntheticPattern.MatchString(name)
}

// HeaderLabel combines the two header cells of a column into a display name.
//
// Row 1 text is the primary label. Row 2 text is appended on a new line when
// it is present, differs from row 1 and is not a placeholder. When row 1 is
// empty, row 2 alone is used. When both are empty the column is synthetic.
func HeaderLabel(h1, h2 model.Value, pos int) string {
	top := headerText(h1)
	bottom := headerText(h2)

	switch {
	case top != "":
		if bottom != "" && bottom != top && !strings.Contains(bottom, syntheticMarker) {
			return top + "\n" + bottom
		}
		return top
	case bottom != "":
		return bottom
	default:
		return SyntheticName(pos)
	}
}

func headerText(v model.Value) string {
	return strings.TrimSpace(norm.NFC.String(model.Text(v)))
}

// NewTable builds a Table from the two header rows and the data rows of a
// sheet. The width is the longest of all rows and every data row is padded
// with empty values to that width.
func NewTable(h1, h2 model.Row, data []model.Row) *model.Table {
	width := len(h1)
	if len(h2) > width {
		width = len(h2)
	}
	for _, r := range data {
		if len(r) > width {
			width = len(r)
		}
	}

	columns := make([]model.Column, width)
	for i := 0; i < width; i++ {
		name := HeaderLabel(cellAt(h1, i), cellAt(h2, i), i)
		columns[i] = model.Column{
			Position:  i,
			Name:      name,
			Synthetic: IsSynthetic(name),
		}
	}

	rows := make([]model.Row, len(data))
	for i, r := range data {
		padded := make(model.Row, width)
		copy(padded, r)
		rows[i] = padded
	}

	return &model.Table{Columns: columns, Rows: rows}
}

func cellAt(r model.Row, i int) model.Value {
	if i < len(r) {
		return r[i]
	}
	return nil
}
