// Package text turns the text-showing operators of a PDF page into
// positioned glyph runs and lays them out as plain text.
//
// # Receiving a Page
//
// A [PageTextReceiver] is driven by the operators of one content stream,
// either through [PageTextReceiver.Dispatch] or by calling the operator
// methods directly:
//
//	r := text.NewPageTextReceiver()
//	if err := r.SetPage(page); err != nil {
//		return err
//	}
//	if err := r.DispatchBytes(contents); err != nil {
//		return err
//	}
//	fmt.Println(r.Content())
//
// Every visible printable-ASCII glyph becomes a [TextRun] in device space.
// Glyphs shown inside a text object (BT ... ET) are buffered and committed
// when the object ends.
//
// # Letter Spacing
//
// Some producers draw text one character at a time. When a text object
// shows mostly single characters, the most common horizontal distance
// between them is stamped on its runs as the estimated character spacing,
// and [TextRun.Mergeable] and [TextRun.Merge] use it instead of the font
// size to decide how far apart runs may be and still form one word.
//
// # Layout
//
// [PageTextReceiver.Content] hands the committed runs to an [Assembler].
// The default folds runs along each row and prints one row per line; the
// layout package places them on a character grid instead.
package text
