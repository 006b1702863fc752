package dump

// Field type suffixes.
const (
	FieldTop    = "_Top"
	FieldBottom = "_Bot"
	FieldFrame  = "_Frame"
)

// File extensions.
const (
	ExtDat  = ".dat"
	ExtTxt  = ".txt"
	ExtPar  = ".par"
	ExtY    = ".Y"
	ExtUV   = ".UV"
	ExtYUV  = ".yuv"
	ExtYUY2 = ".yuy2"
	ExtUYVY = ".uyvy"
)

// Surface type suffixes.
const (
	SurfaceYUV444    = "_yuv444"
	SurfaceYUV411    = "_yuv411"
	SurfaceYUV420    = "_yuv420"
	SurfaceYUV400    = "_yuv400"
	SurfaceYUV422H2Y = "_yuv422h_2y"
	SurfaceYUV422V2Y = "_yuv422v_2y"
	SurfaceYUV422H4Y = "_yuv422h_4y"
	SurfaceYUV422V4Y = "_yuv422v_4y"
	SurfaceYUY2422   = "_yuy2422"
	SurfaceUYVY422   = "_uyvy422"
)

// Buffer types used in file names.
const (
	BufCmd           = "CmdBuf"
	Buf2ndLvl        = "2ndLvl"
	BufCurbe         = "Curbe"
	BufISH           = "ISH"
	BufDSH           = "DSH"
	BufSSH           = "SSH"
	BufSeqParams     = "SeqParams"
	BufPicParams     = "PicParams"
	BufSlcParams     = "SlcParams"
	BufVuiParams     = "VuiParams"
	BufBitstream     = "Bitstream"
	BufFeiPicParams  = "FeiPicParams"
	BufMadRead       = "MADRead"
	BufMadWrite      = "MADWrite"
	BufSegmentParams = "SegmentParams"
	BufIqParams      = "IqParams"
	BufHuffmanTbl    = "HuffmanTbl"
	BufScanParams    = "ScanParams"
	BufMvcPicParams  = "MvcPicParams"
	BufMbParams      = "MbParams"
	BufDecProcParams = "DecProcParams"
	BufHucRegion     = "HucRegion"
	BufHucDmem       = "HucDmem"
	BufEncodePar     = "EncodePar"
)

// Dump attributes. A dump is written only when its attribute is enabled.
const (
	AttrCmdBuffer  = "DumpCmdBuffer"
	Attr2ndLvl     = "Dump2ndLvlBatch"
	AttrCurbe      = "DumpCurbe"
	AttrYUVSurface = "DumpYUVSurface"
	AttrBitstream  = "DumpBitstream"
	AttrHucDmem    = "DumpHucDmem"
	AttrHucRegion  = "DumpHucRegion"
	AttrPicParams  = "DumpPicParams"
	AttrSeqParams  = "DumpSeqParams"
	AttrCapsTable  = "DumpCapsTable"
)

// HucRegionDumpType tags the stage a HuC buffer was captured at.
type HucRegionDumpType int

const (
	HucRegionDumpDefault HucRegionDumpType = iota
	HucRegionDumpInit
	HucRegionDumpUpdate
	HucRegionDumpRegionLocked
	HucRegionDumpCmdInitializer
	HucRegionDumpPakIntegrate
	HucRegionDumpHpu
)

var hucRegionDumpNames = [...]string{"", "_HucInit", "_HucUpdate", "_HucRegionLocked", "_HucCmdInit", "_HucPakIntegrate", "_HucHpu"}

// Suffix returns the file name suffix of the dump type. The default type has none.
func (t HucRegionDumpType) Suffix() string {
	if t < 0 || int(t) >= len(hucRegionDumpNames) {
		return ""
	}
	return hucRegionDumpNames[t]
}

// MediaState names the kernel a command buffer or curbe belongs to.
// The empty state matches every media state filter.
type MediaState string

const (
	MediaStateNone          MediaState = ""
	MediaStateOlp           MediaState = "OLP"
	MediaStateBrcInitReset  MediaState = "ENC_BRC_INIT_RESET"
	MediaStateBrcUpdate     MediaState = "ENC_BRC_UPDATE"
	MediaStateMbEnc         MediaState = "ENC_MBENC"
	MediaStateMe            MediaState = "ENC_ME"
	MediaStateScaling4x     MediaState = "SCALING_4X"
	MediaStateScaling2x     MediaState = "SCALING_2X"
	MediaStateWeightedPred  MediaState = "WP"
	MediaStateSfcProcessing MediaState = "SFC"
)

// SurfaceFormat selects the plane layout written by DumpYUVSurface.
type SurfaceFormat int

const (
	// FormatNV12 has a full-resolution Y plane followed by an interleaved
	// half-height UV plane.
	FormatNV12 SurfaceFormat = iota
	// FormatP010 is NV12 with two bytes per sample.
	FormatP010
	// FormatYUY2 is a single packed plane with two bytes per pixel.
	FormatYUY2
)

// Surface is a CPU-visible view of a decoded or source picture.
type Surface struct {
	Data     []byte
	Width    uint32
	Height   uint32
	Pitch    uint32
	UVOffset uint32
	Format   SurfaceFormat
}
