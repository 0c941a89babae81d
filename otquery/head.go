package otquery

import (
	"github.com/npillmayer/tinyfont/ot"
)

// tableBytes returns the raw bytes of table tag, if the table is present and
// has at least minSize bytes.
func tableBytes(otf *ot.Font, tag string, minSize int) ([]byte, bool) {
	if otf == nil {
		return nil, false
	}
	table := otf.Table(ot.T(tag))
	if table == nil {
		tracer().Debugf("font has no table %s", tag)
		return nil, false
	}
	b := table.Binary()
	if len(b) < minSize {
		tracer().Debugf("table %s too short: %d < %d", tag, len(b), minSize)
		return nil, false
	}
	return b, true
}

// HeadTableInfo is a typed query view over table 'head'.
// Values are decoded directly from the raw table bytes.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64 // seconds since 1904-01-01
	Modified           int64
	XMin               int16
	YMin               int16
	XMax               int16
	YMax               int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

const headTableSize = 54

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b, ok := tableBytes(otf, "head", headTableSize)
	if !ok {
		return info, false
	}
	r := fieldReader{b: b}
	info.MajorVersion = r.u16()
	info.MinorVersion = r.u16()
	info.FontRevision = r.u32()
	info.CheckSumAdjustment = r.u32()
	info.MagicNumber = r.u32()
	info.Flags = r.u16()
	info.UnitsPerEm = r.u16()
	info.Created = r.i64()
	info.Modified = r.i64()
	info.XMin, info.YMin = r.i16(), r.i16()
	info.XMax, info.YMax = r.i16(), r.i16()
	info.MacStyle = r.u16()
	info.LowestRecPPEM = r.u16()
	info.FontDirectionHint = r.i16()
	info.IndexToLocFormat = r.i16()
	info.GlyphDataFormat = r.i16()
	return info, true
}
