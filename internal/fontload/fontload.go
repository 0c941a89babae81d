package fontload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/tinyfont/ot"
)

// ErrNotBase64 is returned for text which is neither base64 nor a base64
// data URI.
var ErrNotBase64 = errors.New("font text is not base64 encoded")

// TinyFont is a parsed tiny font with original bytes and decoded view.
type TinyFont struct {
	Source string // file name or "<text>"
	MIME   string // MIME type of a data URI, if any
	Binary []byte
	OT     *ot.Font
}

// LoadFont loads a font from a file. The file may either contain the binary
// font, or its base64 encoding, optionally as a data URI.
func LoadFont(fontfile string) (*TinyFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	var f *TinyFont
	if isSFNT(bytez) {
		f, err = ParseFont(bytez)
	} else {
		f, err = ParseText(string(bytez))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fontfile, err)
	}
	f.Source = fontfile
	return f, nil
}

// ParseText decodes a font from base64 text or from a data URI
// ("data:font/ttf;base64,…").
func ParseText(text string) (*TinyFont, error) {
	mime, fbytes, err := DecodeText(text)
	if err != nil {
		return nil, err
	}
	f, err := ParseFont(fbytes)
	if err != nil {
		return nil, err
	}
	f.Source, f.MIME = "<text>", mime
	return f, nil
}

// ParseFont parses a binary font from memory.
func ParseFont(fbytes []byte) (f *TinyFont, err error) {
	f = &TinyFont{Binary: fbytes}
	f.OT, err = ot.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeText decodes base64 text or a base64 data URI into bytes. For data
// URIs, the MIME type is returned as well. White space within the text is
// ignored.
func DecodeText(text string) (mime string, fbytes []byte, err error) {
	text = strings.TrimSpace(text)
	if rest, ok := strings.CutPrefix(text, "data:"); ok {
		header, payload, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, fmt.Errorf("%w: data URI without payload", ErrNotBase64)
		}
		var isBase64 bool
		mime, isBase64 = strings.CutSuffix(header, ";base64")
		if !isBase64 {
			return "", nil, fmt.Errorf("%w: data URI is not base64", ErrNotBase64)
		}
		text = payload
	}
	text = strings.Join(strings.Fields(text), "")
	fbytes, err = base64.StdEncoding.DecodeString(text)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotBase64, err)
	}
	return mime, fbytes, nil
}

func isSFNT(b []byte) bool {
	return len(b) >= 4 && (bytes.Equal(b[:4], []byte{0, 1, 0, 0}) ||
		bytes.Equal(b[:4], []byte("true")) || bytes.Equal(b[:4], []byte("OTTO")))
}
