// Package codepage maps byte values to the characters of the Windows-1251
// code page, and scans and formats the radix-suffixed numbers used by the
// assembler and the register displays.
package codepage

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ezrec/i8080/translate"
)

var f = translate.From

var (
	ErrEmpty  = errors.New(f("value is empty"))
	ErrPrefix = errors.New(f("value contains only prefix"))
	ErrNumber = errors.New(f("not a number"))
	ErrAscii  = errors.New(f("can't format as ascii"))
)

// Radix selects the numeric system used by Format.
type Radix int

const (
	Ascii = Radix(0) // Character name, not a number.
	Bin   = Radix(2)
	Oct   = Radix(8)
	Dec   = Radix(10)
	Hex   = Radix(16)
)

// Size of the code page.
const Size = 256

// Display names of the control codes.
var controls = [32]string{
	"NUL", "SOH", "STX", "ETX", "EOT", "ENQ", "ACK", "BEL", "BS", "HT", "LF", "VT", "FF", "CR", "SO", "SI",
	"DLE", "DC1", "DC2", "DC3", "DC4", "NAK", "SYN", "ETB", "CAN", "EM", "SUB", "ESC", "FS", "GS", "RS", "US",
}

// Table holds the display name of every byte value.
// Byte values with no character in the code page have an empty name.
var Table [Size]string

var codePage = charmap.Windows1251

func init() {
	for n := range Size {
		switch {
		case n < len(controls):
			Table[n] = controls[n]
		case n == 0x7f:
			Table[n] = "DEL"
		default:
			r := codePage.DecodeByte(byte(n))
			if r != utf8.RuneError {
				Table[n] = string(r)
			}
		}
	}
}

// Lookup returns the code page index of a character.
func Lookup(r rune) (index int, ok bool) {
	b, ok := codePage.EncodeRune(r)
	if !ok {
		return
	}

	index = int(b)
	return
}

// Name returns the display name of a byte value.
func Name(b byte) string {
	return Table[b]
}

// suffix of each radix.
var suffix = map[Radix]string{
	Bin: "B",
	Oct: "O",
	Dec: "",
	Hex: "H",
}

// radix of each scanned suffix.
var scanSuffix = map[byte]int{
	'B': 2,
	'O': 8,
	'H': 16,
}

// Format renders a number in the requested radix, zero padded to width digits.
//
//	Format(16, Hex, 1)   => "10H"
//	Format(10, Bin, 1)   => "1010B"
//	Format(13, Hex, 4)   => "000DH"
//	Format(65, Ascii, 0) => "A"
func Format(n int, radix Radix, width int) (text string, err error) {
	if radix == Ascii {
		if n < 0 || n >= Size {
			err = ErrAscii
			return
		}
		text = Table[n]
		return
	}

	digits := strings.ToUpper(strconv.FormatInt(int64(n), int(radix)))
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}

	text = digits + suffix[radix]
	return
}

// Scan parses a number with an optional radix suffix.
// A trailing B, O or H selects binary, octal or hexadecimal; bare digits are
// decimal. Case and surrounding whitespace are ignored.
func Scan(s string) (value int, err error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) == 0 {
		err = ErrEmpty
		return
	}

	base := 10
	if b, ok := scanSuffix[s[len(s)-1]]; ok {
		base = b
		s = s[:len(s)-1]
		if len(s) == 0 {
			err = ErrPrefix
			return
		}
	}

	// Only decimal values may carry a sign.
	if base != 10 && strings.ContainsAny(s[:1], "+-") {
		err = ErrNumber
		return
	}

	v64, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		err = errors.Join(ErrNumber, err)
		return
	}

	value = int(v64)
	return
}
