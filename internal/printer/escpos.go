package printer

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	escInit    = []byte{0x1b, 0x40}
	escCenter  = []byte{0x1b, 0x61, 0x01}
	escLeft    = []byte{0x1b, 0x61, 0x00}
	escBoldOn  = []byte{0x1b, 0x45, 0x01}
	escBoldOff = []byte{0x1b, 0x45, 0x00}
	escCut     = []byte{0x1d, 0x56, 0x00}
)

// Charset is a printer code page: the ESC t table number and the matching
// text encoding.
type Charset struct {
	Name     string
	Table    byte
	Encoding encoding.Encoding
}

var charsets = map[string]Charset{
	"cp437": {Name: "cp437", Table: 0, Encoding: charmap.CodePage437},
	"cp850": {Name: "cp850", Table: 2, Encoding: charmap.CodePage850},
	"cp858": {Name: "cp858", Table: 19, Encoding: charmap.CodePage858},
}

// LookupCharset finds a code page by name. An empty name means raw UTF-8.
func LookupCharset(name string) (*Charset, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "utf-8" || name == "utf8" {
		return nil, true
	}
	cs, ok := charsets[name]
	if !ok {
		return nil, false
	}
	return &cs, true
}

// encodeJob turns plain text into an ESC/POS job: the first line bold and
// centered, the rest left aligned, two feed lines and a full cut. A nil cs
// sends the text as UTF-8; otherwise the matching table is selected and the
// text transcoded.
func encodeJob(text string, cs *Charset) []byte {
	lines := strings.Split(text, "\n")
	encode := func(s string) string { return s }
	if cs != nil {
		enc := encoding.ReplaceUnsupported(cs.Encoding.NewEncoder())
		encode = func(s string) string {
			out, err := enc.String(s)
			if err != nil {
				return s
			}
			return out
		}
	}

	out := make([]byte, 0, len(text)+32)
	out = append(out, escInit...)
	if cs != nil {
		out = append(out, 0x1b, 0x74, cs.Table)
	}
	out = append(out, escCenter...)
	out = append(out, escBoldOn...)
	out = append(out, encode(lines[0]+"\n")...)
	out = append(out, escBoldOff...)
	out = append(out, escLeft...)
	for _, line := range lines[1:] {
		out = append(out, encode(line+"\n")...)
	}
	out = append(out, "\n\n"...)
	out = append(out, escCut...)
	return out
}
