// Package contentstream provides parsing of PDF content streams.
//
// Content streams contain the instructions for rendering page content,
// including text display, graphics operations, and image placement.
// The parser turns the raw stream into a flat list of operations that a
// receiver can replay in order:
//
//	parser := contentstream.NewParser(streamData)
//	ops, err := parser.Parse()
//	for _, op := range ops {
//	    fmt.Printf("Operator: %s, Operands: %v\n", op.Operator, op.Operands)
//	}
//
// # Operators
//
// Operators are bare keywords that follow their operands. Besides the
// alphabetic ones (BT, Tf, Tj, cm, ...) the parser accepts T*, d0/d1 and
// the two quote operators ' and ".
//
// Inline images (BI ... ID data EI) are collapsed into a single BI
// operation whose operands are the image dictionary and the raw image
// bytes, so that binary data never reaches the tokenizer.
//
// Comments (% to end of line) are skipped.
//
// # Operand Types
//
// Operands can be any direct PDF object type:
//   - Numbers (core.Int, core.Real)
//   - Strings (core.String)
//   - Names (core.Name)
//   - Booleans and null (core.Bool, core.Null)
//   - Arrays (core.Array)
//   - Dictionaries (core.Dict)
package contentstream
