package text

// ShowItem is one element of a TJ array: a string to show or a position
// adjustment in thousandths of a text space unit.
type ShowItem struct {
	text         []byte
	displacement float64
	isText       bool
}

// TextItem returns an item that shows s.
func TextItem(s []byte) ShowItem {
	return ShowItem{text: s, isText: true}
}

// DisplacementItem returns an item that moves the pen by -n/1000 text
// space units, scaled by the font size.
func DisplacementItem(n float64) ShowItem {
	return ShowItem{displacement: n}
}

func (i ShowItem) IsText() bool          { return i.isText }
func (i ShowItem) Text() []byte          { return i.text }
func (i ShowItem) Displacement() float64 { return i.displacement }
