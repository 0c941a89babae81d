package otquery

import (
	"github.com/npillmayer/tinyfont/ot"
)

// HHeaTableInfo is a typed query view over table 'hhea'.
type HHeaTableInfo struct {
	VersionFixed        uint32
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	MetricDataFormat    int16
	NumberOfHMetrics    uint16
}

const hheaTableSize = 36

// HHeaInfo decodes table 'hhea'.
func HHeaInfo(otf *ot.Font) (HHeaTableInfo, bool) {
	var info HHeaTableInfo
	b, ok := tableBytes(otf, "hhea", hheaTableSize)
	if !ok {
		return info, false
	}
	r := fieldReader{b: b}
	info.VersionFixed = r.u32()
	info.Ascender = r.i16()
	info.Descender = r.i16()
	info.LineGap = r.i16()
	info.AdvanceWidthMax = r.u16()
	info.MinLeftSideBearing = r.i16()
	info.MinRightSideBearing = r.i16()
	info.XMaxExtent = r.i16()
	info.CaretSlopeRise = r.i16()
	info.CaretSlopeRun = r.i16()
	info.CaretOffset = r.i16()
	r.bytes(4 * 2) // reserved
	info.MetricDataFormat = r.i16()
	info.NumberOfHMetrics = r.u16()
	return info, true
}

// OS2TableInfo is a typed query view over table 'OS/2'. Only fields present
// in every table version, up to usWinDescent, are decoded, plus the code page
// ranges of version 1 and later.
type OS2TableInfo struct {
	Version          uint16
	XAvgCharWidth    int16
	WeightClass      uint16
	WidthClass       uint16
	FsType           uint16
	FamilyClass      int16
	Panose           [10]byte
	UnicodeRange     [4]uint32
	VendorID         ot.Tag
	FsSelection      uint16
	FirstCharIndex   uint16
	LastCharIndex    uint16
	TypoAscender     int16
	TypoDescender    int16
	TypoLineGap      int16
	WinAscent        uint16
	WinDescent       uint16
	HasCodePageRange bool
	CodePageRange    [2]uint32
}

const (
	os2MinSize = 78
	os2V1Size  = 86
)

// OS2Info decodes table 'OS/2'.
func OS2Info(otf *ot.Font) (OS2TableInfo, bool) {
	var info OS2TableInfo
	b, ok := tableBytes(otf, "OS/2", os2MinSize)
	if !ok {
		return info, false
	}
	r := fieldReader{b: b}
	info.Version = r.u16()
	info.XAvgCharWidth = r.i16()
	info.WeightClass = r.u16()
	info.WidthClass = r.u16()
	info.FsType = r.u16()
	r.bytes(10 * 2) // sub- and superscript, strikeout
	info.FamilyClass = r.i16()
	copy(info.Panose[:], r.bytes(10))
	for i := range info.UnicodeRange {
		info.UnicodeRange[i] = r.u32()
	}
	info.VendorID = ot.Tag(r.u32())
	info.FsSelection = r.u16()
	info.FirstCharIndex = r.u16()
	info.LastCharIndex = r.u16()
	info.TypoAscender = r.i16()
	info.TypoDescender = r.i16()
	info.TypoLineGap = r.i16()
	info.WinAscent = r.u16()
	info.WinDescent = r.u16()
	if info.Version >= 1 && len(b) >= os2V1Size {
		info.HasCodePageRange = true
		info.CodePageRange[0] = r.u32()
		info.CodePageRange[1] = r.u32()
	}
	return info, true
}

// PostTableInfo is a typed query view over the header of table 'post'.
type PostTableInfo struct {
	VersionFixed       uint32
	ItalicAngle        int32 // 16.16 fixed
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       uint32
}

const postHeaderSize = 16

// PostInfo decodes the header of table 'post'. Fields beyond isFixedPitch
// are not present in the fonts generated by otgen.
func PostInfo(otf *ot.Font) (PostTableInfo, bool) {
	var info PostTableInfo
	b, ok := tableBytes(otf, "post", postHeaderSize)
	if !ok {
		return info, false
	}
	r := fieldReader{b: b}
	info.VersionFixed = r.u32()
	info.ItalicAngle = int32(r.u32())
	info.UnderlinePosition = r.i16()
	info.UnderlineThickness = r.i16()
	info.IsFixedPitch = r.u32()
	return info, true
}
