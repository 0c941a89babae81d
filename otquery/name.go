package otquery

import (
	"fmt"
	"iter"
	"strings"

	"github.com/npillmayer/tinyfont/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// PlatformID is the platform of a name record or cmap encoding record.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1 // not supported
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is the platform specific encoding of a name record.
type EncodingID uint16

const (
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDWindowsSymbol EncodingID = 0 // for now we will not support symbol fonts
	EncodingIDWindowsBMP    EncodingID = 1
)

// NameRecord is an entry of table 'name', together with its decoded string.
// Strings of unsupported encodings are left empty.
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16      // e.g., 0x0409 for en-US
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
	Length   uint16      // of the string, in bytes
	Offset   uint16      // from the start of the string storage
	Value    string
}

func (rec NameRecord) String() string {
	return fmt.Sprintf("name #%d (%d/%d/%04x) [%d:%d] %q", rec.Name,
		rec.Platform, rec.Encoding, rec.Language, rec.Offset, rec.Length, rec.Value)
}

// NameRecords returns all records of a font's table 'name', including the
// ones with empty strings. Records pointing outside of the table are
// returned without a value.
func NameRecords(otf *ot.Font) []NameRecord {
	names := checkNameTableSafe(otf)
	if names == nil {
		return nil
	}
	b := names.Binary()
	count := int(u16(b[2:4]))
	storage := int(u16(b[4:6]))
	records := make([]NameRecord, 0, count)
	for i := range count {
		rec := b[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
		r := NameRecord{
			Platform: PlatformID(u16(rec[0:2])),
			Encoding: EncodingID(u16(rec[2:4])),
			Language: u16(rec[4:6]),
			Name:     sfnt.NameID(u16(rec[6:8])),
			Length:   u16(rec[8:10]),
			Offset:   u16(rec[10:12]),
		}
		start := storage + int(r.Offset)
		end := start + int(r.Length)
		if isSupportedNameEncoding(r) && end <= len(b) {
			if s, err := decodeNameUTF16(b[start:end]); err == nil {
				r.Value = s
			}
		} else if end > len(b) {
			tracer().Debugf("name record %d out of bounds: [%d:%d]", i, start, end)
		}
		records = append(records, r)
	}
	return records
}

// NamesRange yields decoded `(nameID, value)` pairs from a font's
// `name` table.
//
// Only currently supported encodings are yielded (Unicode BMP and Windows BMP),
// and malformed, out-of-bounds or empty records are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	records := NameRecords(otf)
	return func(yield func(sfnt.NameID, string) bool) {
		for _, rec := range records {
			if rec.Value == "" {
				continue
			}
			if !yield(rec.Name, rec.Value) {
				return
			}
		}
	}
}

// NameInfo returns the font's family and subfamily names as a map with keys
// "family" and "subfamily". Keys are present only if the font contains a
// record for them, even if the name is empty.
func NameInfo(otf *ot.Font) map[string]string {
	info := make(map[string]string)
	for _, rec := range NameRecords(otf) {
		if !isSupportedNameEncoding(rec) {
			continue
		}
		switch rec.Name {
		case sfnt.NameIDFamily:
			info["family"] = rec.Value
		case sfnt.NameIDSubfamily:
			info["subfamily"] = rec.Value
		}
	}
	return info
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access,
// no empty tables, etc.
func checkNameTableSafe(otf *ot.Font) ot.Table {
	if otf == nil {
		return nil
	}
	table := otf.Table(ot.T("name"))
	if table == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	b := table.Binary()
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:4]))
	strOff := int(u16(b[4:6]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	recordsEnd := nameHeaderSize + count*nameRecordSize
	if recordsEnd > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return table
}

func isSupportedNameEncoding(rec NameRecord) bool {
	return (rec.Platform == PlatformIDUnicode && rec.Encoding == EncodingIDUnicodeBMP) ||
		(rec.Platform == PlatformIDWindows && rec.Encoding == EncodingIDWindowsBMP)
}

func decodeNameUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return strings.TrimRight(string(s), "\x00"), nil
}
