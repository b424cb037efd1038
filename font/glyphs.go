package font

import (
	"strconv"
	"strings"
)

// glyphNameToUnicode covers the Adobe glyph names that appear in the
// /Differences arrays of Latin text fonts. Single letters are added in init.
var glyphNameToUnicode = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=',
	"greater": '>', "question": '?', "at": '@', "bracketleft": '[',
	"backslash": '\\', "bracketright": ']', "asciicircum": '^',
	"underscore": '_', "grave": '`', "braceleft": '{', "bar": '|',
	"braceright": '}', "asciitilde": '~',

	"quoteleft": '‘', "quoteright": '’', "quotedblleft": '“',
	"quotedblright": '”', "quotesinglbase": '‚', "quotedblbase": '„',
	"guillemotleft": '«', "guillemotright": '»',
	"guilsinglleft": '‹', "guilsinglright": '›',
	"endash": '–', "emdash": '—', "bullet": '•',
	"ellipsis": '…', "dagger": '†', "daggerdbl": '‡',
	"perthousand": '‰', "trademark": '™', "copyright": '©',
	"registered": '®', "degree": '°', "section": '§',
	"paragraph": '¶', "periodcentered": '·', "minus": '−',
	"multiply": '×', "divide": '÷', "plusminus": '±',
	"fraction": '⁄', "florin": 'ƒ', "Euro": '€',
	"cent": '¢', "sterling": '£', "yen": '¥',
	"currency": '¤', "exclamdown": '¡', "questiondown": '¿',
	"nbspace": '\u00A0', "sfthyphen": '\u00AD', "fi": 'ﬁ', "fl": 'ﬂ',
	"dotlessi": 'ı', "germandbls": 'ß',
	"ordfeminine": 'ª', "ordmasculine": 'º',
	"onehalf": '½', "onequarter": '¼', "threequarters": '¾',

	"AE": 'Æ', "ae": 'æ', "OE": 'Œ', "oe": 'œ',
	"Oslash": 'Ø', "oslash": 'ø', "Lslash": 'Ł', "lslash": 'ł',
	"Eth": 'Ð', "eth": 'ð', "Thorn": 'Þ', "thorn": 'þ',
	"Scaron": 'Š', "scaron": 'š', "Zcaron": 'Ž', "zcaron": 'ž',
	"Ydieresis": 'Ÿ', "ydieresis": 'ÿ',

	"Agrave": 'À', "Aacute": 'Á', "Acircumflex": 'Â',
	"Atilde": 'Ã', "Adieresis": 'Ä', "Aring": 'Å',
	"Ccedilla": 'Ç', "Egrave": 'È', "Eacute": 'É',
	"Ecircumflex": 'Ê', "Edieresis": 'Ë', "Igrave": 'Ì',
	"Iacute": 'Í', "Icircumflex": 'Î', "Idieresis": 'Ï',
	"Ntilde": 'Ñ', "Ograve": 'Ò', "Oacute": 'Ó',
	"Ocircumflex": 'Ô', "Otilde": 'Õ', "Odieresis": 'Ö',
	"Ugrave": 'Ù', "Uacute": 'Ú', "Ucircumflex": 'Û',
	"Udieresis": 'Ü', "Yacute": 'Ý',
	"agrave": 'à', "aacute": 'á', "acircumflex": 'â',
	"atilde": 'ã', "adieresis": 'ä', "aring": 'å',
	"ccedilla": 'ç', "egrave": 'è', "eacute": 'é',
	"ecircumflex": 'ê', "edieresis": 'ë', "igrave": 'ì',
	"iacute": 'í', "icircumflex": 'î', "idieresis": 'ï',
	"ntilde": 'ñ', "ograve": 'ò', "oacute": 'ó',
	"ocircumflex": 'ô', "otilde": 'õ', "odieresis": 'ö',
	"ugrave": 'ù', "uacute": 'ú', "ucircumflex": 'û',
	"udieresis": 'ü', "yacute": 'ý',
}

func init() {
	for r := 'A'; r <= 'Z'; r++ {
		glyphNameToUnicode[string(r)] = r
		glyphNameToUnicode[string(r+'a'-'A')] = r + 'a' - 'A'
	}
}

// GlyphNameToRune resolves a glyph name to its Unicode value. Besides the
// named glyphs it understands the uniXXXX and uXXXX[XX] forms.
func GlyphNameToRune(name string) (rune, bool) {
	// suffixes such as "a.sc" or "f_i.alt" name variants of the base glyph
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if r, ok := glyphNameToUnicode[name]; ok {
		return r, true
	}

	var hex string
	switch {
	case strings.HasPrefix(name, "uni") && len(name) == 7:
		hex = name[3:]
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		hex = name[1:]
	default:
		return 0, false
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || v > 0x10FFFF {
		return 0, false
	}
	return rune(v), true
}
