package font

import (
	"fmt"
	"strings"

	textunicode "golang.org/x/text/encoding/unicode"

	"github.com/gordonbisnor/pdf-reader/contentstream"
	"github.com/gordonbisnor/pdf-reader/core"
)

// CMap maps character codes to Unicode text, as read from a font's
// /ToUnicode stream.
type CMap struct {
	charMappings  map[uint32]string
	rangeMappings []CMapRange

	// codeBytes is the widest code length declared by the codespace ranges
	codeBytes int
}

// CMapRange maps the codes StartCode..EndCode to Dest, Dest+1, and so on,
// incrementing the last character of Dest.
type CMapRange struct {
	StartCode uint32
	EndCode   uint32
	Dest      string
}

// NewCMap creates an empty CMap.
func NewCMap() *CMap {
	return &CMap{charMappings: make(map[uint32]string)}
}

// ParseCMap reads bfchar and bfrange mappings from CMap program data.
// The CMap is tokenised with the content stream parser; PostScript
// keywords such as begincmap or def come out as operations and are ignored.
func ParseCMap(data []byte) (*CMap, error) {
	ops, err := contentstream.NewParser(data).Parse()
	if err != nil {
		return nil, fmt.Errorf("font: parse cmap: %w", err)
	}

	cm := NewCMap()
	for _, op := range ops {
		switch op.Operator {
		case "endcodespacerange":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				if lo, ok := op.Operands[i].(core.String); ok && len(lo) > cm.codeBytes {
					cm.codeBytes = len(lo)
				}
			}
		case "endbfchar":
			for i := 0; i+1 < len(op.Operands); i += 2 {
				src, ok1 := op.Operands[i].(core.String)
				dst, ok2 := op.Operands[i+1].(core.String)
				if !ok1 || !ok2 {
					continue
				}
				cm.charMappings[codeValue(src.Bytes())] = decodeUTF16(dst.Bytes())
			}
		case "endbfrange":
			for i := 0; i+2 < len(op.Operands); i += 3 {
				cm.addRange(op.Operands[i], op.Operands[i+1], op.Operands[i+2])
			}
		}
	}
	return cm, nil
}

func (cm *CMap) addRange(loObj, hiObj, dstObj core.Object) {
	lo, ok1 := loObj.(core.String)
	hi, ok2 := hiObj.(core.String)
	if !ok1 || !ok2 {
		return
	}
	start, end := codeValue(lo.Bytes()), codeValue(hi.Bytes())
	if end < start {
		return
	}

	switch dst := dstObj.(type) {
	case core.String:
		cm.rangeMappings = append(cm.rangeMappings, CMapRange{
			StartCode: start,
			EndCode:   end,
			Dest:      decodeUTF16(dst.Bytes()),
		})
	case core.Array:
		// one destination string per code
		for i, obj := range dst {
			code := start + uint32(i)
			if code > end {
				break
			}
			if s, ok := obj.(core.String); ok {
				cm.charMappings[code] = decodeUTF16(s.Bytes())
			}
		}
	}
}

// Lookup returns the Unicode text for a character code.
func (cm *CMap) Lookup(code uint32) (string, bool) {
	if s, ok := cm.charMappings[code]; ok {
		return s, true
	}
	for _, r := range cm.rangeMappings {
		if code < r.StartCode || code > r.EndCode {
			continue
		}
		runes := []rune(r.Dest)
		if len(runes) == 0 {
			return "", false
		}
		runes[len(runes)-1] += rune(code - r.StartCode)
		return string(runes), true
	}
	return "", false
}

// CodeBytes reports the code width declared by the codespace ranges, or 0
// when the CMap declared none.
func (cm *CMap) CodeBytes() int {
	return cm.codeBytes
}

// LookupString decodes data as a sequence of codes of the CMap's code
// width, two bytes when undeclared. Unmapped codes are dropped.
func (cm *CMap) LookupString(data []byte) string {
	n := cm.codeBytes
	if n == 0 {
		n = 2
	}
	var sb strings.Builder
	for _, code := range splitCodes(data, n) {
		if s, ok := cm.Lookup(code); ok {
			sb.WriteString(s)
		}
	}
	return sb.String()
}

func codeValue(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// splitCodes cuts data into big-endian codes of width n. A short tail is
// taken as a final code of its own.
func splitCodes(data []byte, n int) []uint32 {
	codes := make([]uint32, 0, (len(data)+n-1)/n)
	for i := 0; i < len(data); i += n {
		end := i + n
		if end > len(data) {
			end = len(data)
		}
		codes = append(codes, codeValue(data[i:end]))
	}
	return codes
}

var utf16Decoder = textunicode.UTF16(textunicode.BigEndian, textunicode.UseBOM)

// decodeUTF16 converts a CMap destination string. Single bytes are taken
// as Latin-1; anything longer is UTF-16BE.
func decodeUTF16(b []byte) string {
	if len(b) == 1 {
		return string(rune(b[0]))
	}
	out, err := utf16Decoder.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(out)
}
