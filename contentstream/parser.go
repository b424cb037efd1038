package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gordonbisnor/pdf-reader/core"
)

// Operation represents a single content stream operation consisting of an
// operator and its operands. Operands are PDF objects that precede the operator.
type Operation struct {
	Operator string        // The operator (e.g., "Tj", "Tm", "q")
	Operands []core.Object // The operands
}

// Parser parses PDF content streams into a sequence of operations.
type Parser struct {
	data     []byte
	pos      int
	operands []core.Object
	ops      []Operation
}

// NewParser creates a new content stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse parses the content stream and returns all operations in order.
// Operands left over at the end of the stream are discarded.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			break
		}

		if err := p.parseNext(); err != nil {
			return nil, err
		}
	}

	return p.ops, nil
}

// parseNext parses the next token, which is either an operand (pushed onto
// the operand list) or an operator (which consumes the operand list).
func (p *Parser) parseNext() error {
	start := p.pos
	c := p.data[p.pos]

	if isLetter(c) || c == '\'' || c == '"' {
		return p.parseKeyword()
	}

	operand, err := p.parseOperand()
	if err != nil {
		return fmt.Errorf("at position %d: %w", start, err)
	}

	p.operands = append(p.operands, operand)
	return nil
}

// parseKeyword reads a bare keyword. true, false and null are operands;
// anything else is an operator.
func (p *Parser) parseKeyword() error {
	start := p.pos
	word := p.readKeyword()

	switch word {
	case "true":
		p.operands = append(p.operands, core.Bool(true))
		return nil
	case "false":
		p.operands = append(p.operands, core.Bool(false))
		return nil
	case "null":
		p.operands = append(p.operands, core.Null{})
		return nil
	case "":
		return fmt.Errorf("empty operator at position %d", start)
	case "BI":
		return p.parseInlineImage()
	}

	p.emit(word)
	return nil
}

func (p *Parser) readKeyword() string {
	start := p.pos
	if c := p.data[p.pos]; c == '\'' || c == '"' {
		p.pos++
		return string(c)
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isLetter(c) || (c >= '0' && c <= '9') || c == '*' {
			p.pos++
			continue
		}
		break
	}
	return string(p.data[start:p.pos])
}

// emit records an operation with the pending operands.
func (p *Parser) emit(operator string) {
	p.ops = append(p.ops, Operation{
		Operator: operator,
		Operands: p.operands,
	})
	p.operands = nil
}

// parseInlineImage reads "BI <key value>... ID <data> EI" and records it
// as a single BI operation with the image dictionary and raw data.
func (p *Parser) parseInlineImage() error {
	dict := make(core.Dict)
	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			return fmt.Errorf("unterminated inline image")
		}
		if p.data[p.pos] != '/' {
			break
		}
		key, err := p.parseName()
		if err != nil {
			return err
		}
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			return fmt.Errorf("unterminated inline image")
		}
		var value core.Object
		if isLetter(p.data[p.pos]) {
			switch word := p.readKeyword(); word {
			case "true", "false":
				value = core.Bool(word == "true")
			default:
				// abbreviated inline image values are sometimes bare words
				value = core.Name(word)
			}
		} else {
			value, err = p.parseOperand()
			if err != nil {
				return err
			}
		}
		dict[string(key.(core.Name))] = value
	}

	if !bytes.HasPrefix(p.data[p.pos:], []byte("ID")) {
		return fmt.Errorf("inline image at position %d: missing ID", p.pos)
	}
	p.pos += 2
	// a single whitespace byte separates ID from the data
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}

	dataStart := p.pos
	for p.pos < len(p.data) {
		if p.data[p.pos] == 'E' && p.pos+1 < len(p.data) && p.data[p.pos+1] == 'I' &&
			(p.pos == dataStart || isWhitespace(p.data[p.pos-1])) &&
			(p.pos+2 == len(p.data) || isWhitespace(p.data[p.pos+2]) || isDelimiter(p.data[p.pos+2])) {
			data := bytes.TrimRight(p.data[dataStart:p.pos], " \t\r\n\f\x00")
			p.pos += 2
			p.operands = append(p.operands, dict, core.String(data))
			p.emit("BI")
			return nil
		}
		p.pos++
	}

	return fmt.Errorf("inline image at position %d: missing EI", dataStart)
}

// parseOperand parses a single operand, which can be a number, string, name,
// array, dictionary, boolean, or null.
func (p *Parser) parseOperand() (core.Object, error) {
	p.skipWhitespaceAndComments()

	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	c := p.data[p.pos]

	switch {
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case c == '(':
		return p.parseString()
	case c == '<' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '<':
		return p.parseDict()
	case c == '<':
		return p.parseHexString()
	case c == '/':
		return p.parseName()
	case c == '[':
		return p.parseArray()
	case isLetter(c):
		switch word := p.readKeyword(); word {
		case "true":
			return core.Bool(true), nil
		case "false":
			return core.Bool(false), nil
		case "null":
			return core.Null{}, nil
		default:
			return nil, fmt.Errorf("unexpected keyword %q inside operand", word)
		}
	}

	return nil, fmt.Errorf("unexpected character at position %d: %c", p.pos, c)
}

// parseNumber parses an integer or real number operand.
func (p *Parser) parseNumber() (core.Object, error) {
	start := p.pos
	hasDecimal := false

	if p.data[p.pos] == '+' || p.data[p.pos] == '-' {
		p.pos++
	}

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
		} else if c == '.' && !hasDecimal {
			hasDecimal = true
			p.pos++
		} else {
			break
		}
	}

	numStr := string(p.data[start:p.pos])

	if hasDecimal {
		// "4." and "-.5" are valid PDF reals
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			if numStr == "." || numStr == "-." || numStr == "+." {
				return core.Real(0), nil
			}
			return nil, fmt.Errorf("invalid real number %q: %w", numStr, err)
		}
		return core.Real(val), nil
	}

	if numStr == "-" || numStr == "+" {
		return core.Int(0), nil
	}

	val, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid integer %q: %w", numStr, err)
	}
	return core.Int(val), nil
}

// parseString parses a literal string (...) with escape sequence handling.
func (p *Parser) parseString() (core.Object, error) {
	p.pos++ // skip '('

	var result bytes.Buffer
	depth := 1

	for p.pos < len(p.data) && depth > 0 {
		c := p.data[p.pos]

		switch {
		case c == '\\' && p.pos+1 < len(p.data):
			p.pos++
			next := p.data[p.pos]
			switch next {
			case 'n':
				result.WriteByte('\n')
				p.pos++
			case 'r':
				result.WriteByte('\r')
				p.pos++
			case 't':
				result.WriteByte('\t')
				p.pos++
			case 'b':
				result.WriteByte('\b')
				p.pos++
			case 'f':
				result.WriteByte('\f')
				p.pos++
			case '\r':
				// line continuation
				p.pos++
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				p.pos++
			case '0', '1', '2', '3', '4', '5', '6', '7':
				octalVal := int(next - '0')
				p.pos++
				for i := 0; i < 2 && p.pos < len(p.data); i++ {
					digit := p.data[p.pos]
					if digit < '0' || digit > '7' {
						break
					}
					octalVal = octalVal*8 + int(digit-'0')
					p.pos++
				}
				result.WriteByte(byte(octalVal & 0xFF))
			default:
				// \( \) \\ and unknown escapes: drop the backslash
				result.WriteByte(next)
				p.pos++
			}
		case c == '(':
			depth++
			result.WriteByte(c)
			p.pos++
		case c == ')':
			depth--
			if depth > 0 {
				result.WriteByte(c)
			}
			p.pos++
		default:
			result.WriteByte(c)
			p.pos++
		}
	}

	if depth != 0 {
		return nil, fmt.Errorf("unclosed string")
	}

	return core.String(result.String()), nil
}

// parseHexString parses a hexadecimal string <...>. An odd final digit is
// padded with 0.
func (p *Parser) parseHexString() (core.Object, error) {
	p.pos++ // skip '<'

	var result bytes.Buffer
	var high byte
	haveHigh := false

	for {
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed hex string")
		}
		c := p.data[p.pos]
		p.pos++

		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("invalid hex digit: %c", c)
		}

		if haveHigh {
			result.WriteByte(high<<4 | hexValue(c))
			haveHigh = false
		} else {
			high = hexValue(c)
			haveHigh = true
		}
	}

	if haveHigh {
		result.WriteByte(high << 4)
	}

	return core.String(result.String()), nil
}

// parseName parses a name object /Name with # escape handling.
func (p *Parser) parseName() (core.Object, error) {
	p.pos++ // skip '/'

	var result bytes.Buffer

	for p.pos < len(p.data) {
		c := p.data[p.pos]

		if isWhitespace(c) || isDelimiter(c) {
			break
		}

		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			result.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}

		result.WriteByte(c)
		p.pos++
	}

	return core.Name(result.String()), nil
}

// parseArray parses an array [...] of operands.
func (p *Parser) parseArray() (core.Object, error) {
	p.pos++ // skip '['

	arr := core.Array{}

	for {
		p.skipWhitespaceAndComments()

		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed array")
		}

		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}

		obj, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		arr = append(arr, obj)
	}
}

// parseDict parses a dictionary <<...>>, used by marked-content operators.
func (p *Parser) parseDict() (core.Object, error) {
	p.pos += 2 // skip '<<'

	dict := make(core.Dict)

	for {
		p.skipWhitespaceAndComments()

		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unclosed dictionary")
		}

		if p.data[p.pos] == '>' && p.pos+1 < len(p.data) && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}

		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key must be a name")
		}

		key, err := p.parseName()
		if err != nil {
			return nil, err
		}

		value, err := p.parseOperand()
		if err != nil {
			return nil, err
		}

		dict[string(key.(core.Name))] = value
	}
}

// skipWhitespaceAndComments advances past whitespace and % comments.
func (p *Parser) skipWhitespaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		return
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isLetter reports whether c is an ASCII letter.
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
