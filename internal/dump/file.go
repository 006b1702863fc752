package dump

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/config"
	"github.com/smazurov/mediacaps/internal/events"
	"github.com/smazurov/mediacaps/internal/logging"
)

const dwordsPerLine = 8

// FileSink writes enabled dumps below Config.OutputDir.
type FileSink struct {
	mu     sync.RWMutex
	cfg    *Config
	frame  uint32
	bus    *events.Bus
	logger *slog.Logger
}

// NewFileSink creates a sink. A nil cfg disables every attribute; a nil bus
// publishes nothing.
func NewFileSink(cfg *Config, bus *events.Bus) *FileSink {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &FileSink{
		cfg:    cfg,
		bus:    bus,
		logger: logging.GetLogger("dump"),
	}
}

// Apply swaps the active config.
func (s *FileSink) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	s.logger.Info("Dump config applied", "output_dir", cfg.OutputDir, "attributes", len(cfg.Attributes))
}

// Config returns the active config.
func (s *FileSink) Config() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Watch reloads the config from path whenever the file changes. The
// returned function stops watching.
func (s *FileSink) Watch(ctx context.Context, path string) (func() error, error) {
	w := config.NewConfigWatcher(path, LoadConfig, s.logger,
		config.WithErrorHandler[*Config](func(err error) {
			s.bus.Publish(events.ConfigReloadedEvent{
				Path:      path,
				Error:     err.Error(),
				Timestamp: time.Now().UTC().Format(time.RFC3339),
			})
		}))
	w.OnReload(func(cfg *Config) {
		s.Apply(cfg)
		s.bus.Publish(events.ConfigReloadedEvent{
			Path:      path,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w.Stop, nil
}

// SetFrame sets the frame number used in file names and range checks.
func (s *FileSink) SetFrame(n uint32) {
	s.mu.Lock()
	s.frame = n
	s.mu.Unlock()
}

// Frame returns the current frame number.
func (s *FileSink) Frame() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

// DumpIsEnabled reports whether attr is dumped for the current frame.
func (s *FileSink) DumpIsEnabled(attr string) bool {
	return s.enabled(attr, MediaStateNone)
}

func (s *FileSink) enabled(attr string, state MediaState) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Enabled(attr, s.frame, state)
}

// CreateFileName builds <dir>/<frame>-<funcName>_<bufType><extType> for the
// current frame. An empty bufType drops the separator.
func (s *FileSink) CreateFileName(funcName, bufType, extType string) string {
	s.mu.RLock()
	dir, frame := s.cfg.OutputDir, s.frame
	s.mu.RUnlock()
	return fileName(dir, frame, funcName, bufType, extType)
}

func fileName(dir string, frame uint32, funcName, bufType, extType string) string {
	name := fmt.Sprintf("%04d-%s", frame, funcName)
	if bufType != "" {
		name += "_" + bufType
	}
	return filepath.Join(dir, name+extType)
}

// Report implements caps.DumpReporter. The capability table is written as
// text; other requests go through DumpData. A non-zero req.Frame overrides
// the current frame in the file name.
func (s *FileSink) Report(req caps.DumpRequest) error {
	s.mu.RLock()
	cfg, frame := s.cfg, s.frame
	s.mu.RUnlock()
	if req.Frame != 0 {
		frame = req.Frame
	}
	if !cfg.Enabled(req.Attr, frame, MediaStateNone) {
		return nil
	}

	if req.Attr == caps.DumpAttrCapsTable {
		return s.write(req.Attr, frame, fileName(cfg.OutputDir, frame, req.Name, "", ExtTxt), req.Data)
	}
	return s.dumpData(cfg, frame, req.Data, req.Attr, req.Name)
}

// DumpBuffer writes size bytes of data starting at offset.
func (s *FileSink) DumpBuffer(data []byte, attr, bufferName string, size, offset uint32, state MediaState) error {
	if !s.enabled(attr, state) {
		return nil
	}
	chunk, err := slice(data, offset, size)
	if err != nil {
		return fmt.Errorf("failed to dump %s: %w", bufferName, err)
	}
	return s.DumpData(chunk, attr, bufferName)
}

// DumpData writes data in binary, or as hex dwords when the config asks for it.
func (s *FileSink) DumpData(data []byte, attr, bufferName string) error {
	s.mu.RLock()
	cfg, frame := s.cfg, s.frame
	s.mu.RUnlock()
	if !cfg.Enabled(attr, frame, MediaStateNone) {
		return nil
	}
	return s.dumpData(cfg, frame, data, attr, bufferName)
}

func (s *FileSink) dumpData(cfg *Config, frame uint32, data []byte, attr, bufferName string) error {
	if cfg.HexDump {
		return s.write(attr, frame, fileName(cfg.OutputDir, frame, bufferName, "", ExtTxt), HexDwords(data))
	}
	return s.write(attr, frame, fileName(cfg.OutputDir, frame, bufferName, "", ExtDat), data)
}

// DumpBufferInHexDwords writes data as hex dwords regardless of HexDump.
func (s *FileSink) DumpBufferInHexDwords(data []byte, attr, bufferName string) error {
	if !s.enabled(attr, MediaStateNone) {
		return nil
	}
	return s.write(attr, s.Frame(), s.CreateFileName(bufferName, "", ExtTxt), HexDwords(data))
}

// Dump2DBufferInBinary writes height rows of width bytes read at pitch.
func (s *FileSink) Dump2DBufferInBinary(data []byte, width, height, pitch uint32, attr, bufferName string) error {
	if !s.enabled(attr, MediaStateNone) {
		return nil
	}
	out, err := Pack2D(data, width, height, pitch)
	if err != nil {
		return fmt.Errorf("failed to dump %s: %w", bufferName, err)
	}
	return s.write(attr, s.Frame(), s.CreateFileName(bufferName, "", ExtDat), out)
}

// DumpYUVSurface writes the visible planes of surface into one .yuv file.
func (s *FileSink) DumpYUVSurface(surface *Surface, attr, surfName string, state MediaState) error {
	if !s.enabled(attr, state) {
		return nil
	}
	out, err := packSurface(surface)
	if err != nil {
		return fmt.Errorf("failed to dump surface %s: %w", surfName, err)
	}
	return s.write(attr, s.Frame(), s.CreateFileName(surfName, surfaceSuffix(surface.Format), ExtYUV), out)
}

// DumpCmdBuffer writes a command buffer as hex dwords.
func (s *FileSink) DumpCmdBuffer(data []byte, state MediaState, cmdName string) error {
	if !s.enabled(AttrCmdBuffer, state) {
		return nil
	}
	if cmdName == "" {
		cmdName = "CmdBuffer"
	}
	if state != MediaStateNone {
		cmdName += "_" + string(state)
	}
	return s.write(AttrCmdBuffer, s.Frame(), s.CreateFileName(cmdName, BufCmd, ExtTxt), HexDwords(data))
}

// DumpCurbe writes the constant buffer of a kernel.
func (s *FileSink) DumpCurbe(data []byte, state MediaState) error {
	if !s.enabled(AttrCurbe, state) {
		return nil
	}
	name := "Kernel"
	if state != MediaStateNone {
		name = string(state)
	}

	s.mu.RLock()
	hex := s.cfg.HexDump
	s.mu.RUnlock()
	if hex {
		return s.write(AttrCurbe, s.Frame(), s.CreateFileName(name, BufCurbe, ExtTxt), HexDwords(data))
	}
	return s.write(AttrCurbe, s.Frame(), s.CreateFileName(name, BufCurbe, ExtDat), data)
}

// DumpHucDmem writes the DMEM of a HuC pass.
func (s *FileSink) DumpHucDmem(data []byte, size, passNum uint32, dumpType HucRegionDumpType) error {
	if !s.enabled(AttrHucDmem, MediaStateNone) {
		return nil
	}
	chunk, err := slice(data, 0, size)
	if err != nil {
		return fmt.Errorf("failed to dump HuC DMEM: %w", err)
	}
	name := fmt.Sprintf("Hucpass%d%s", passNum, dumpType.Suffix())
	return s.write(AttrHucDmem, s.Frame(), s.CreateFileName(name, BufHucDmem, ExtDat), chunk)
}

// DumpHucRegion writes one virtual address region of a HuC pass.
func (s *FileSink) DumpHucRegion(data []byte, offset, size, regionNum uint32, regionName string, input bool, passNum uint32, dumpType HucRegionDumpType) error {
	if !s.enabled(AttrHucRegion, MediaStateNone) {
		return nil
	}
	chunk, err := slice(data, offset, size)
	if err != nil {
		return fmt.Errorf("failed to dump HuC region %d: %w", regionNum, err)
	}

	direction := "output"
	if input {
		direction = "input"
	}
	name := fmt.Sprintf("Hucpass%d%s_Region%d%s_%s", passNum, dumpType.Suffix(), regionNum, regionName, direction)
	return s.write(AttrHucRegion, s.Frame(), s.CreateFileName(name, BufHucRegion, ExtDat), chunk)
}

func (s *FileSink) write(attr string, frame uint32, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dump %s: %w", path, err)
	}

	s.logger.Debug("Dump written", "attr", attr, "path", path, "bytes", len(data))
	s.bus.Publish(events.DumpWrittenEvent{
		Attr:      attr,
		Path:      path,
		Bytes:     len(data),
		Frame:     frame,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// HexDwords renders data as little-endian dwords, eight per line. A trailing
// partial dword is zero padded.
func HexDwords(data []byte) []byte {
	var buf bytes.Buffer
	var word [4]byte
	for i := 0; i < len(data); i += 4 {
		clear(word[:])
		copy(word[:], data[i:])
		fmt.Fprintf(&buf, "%08x", binary.LittleEndian.Uint32(word[:]))

		if (i/4+1)%dwordsPerLine == 0 || i+4 >= len(data) {
			buf.WriteByte('\n')
		} else {
			buf.WriteByte(' ')
		}
	}
	return buf.Bytes()
}

// Pack2D copies height rows of width bytes spaced pitch apart into a
// contiguous buffer.
func Pack2D(data []byte, width, height, pitch uint32) ([]byte, error) {
	if width > pitch {
		return nil, fmt.Errorf("width %d exceeds pitch %d", width, pitch)
	}
	if height == 0 || width == 0 {
		return nil, nil
	}
	need := uint64(height-1)*uint64(pitch) + uint64(width)
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("buffer holds %d bytes, %dx%d at pitch %d needs %d", len(data), width, height, pitch, need)
	}

	out := make([]byte, 0, width*height)
	for row := uint32(0); row < height; row++ {
		start := row * pitch
		out = append(out, data[start:start+width]...)
	}
	return out, nil
}

func packSurface(surface *Surface) ([]byte, error) {
	if surface == nil {
		return nil, fmt.Errorf("nil surface")
	}

	switch surface.Format {
	case FormatNV12, FormatP010:
		rowBytes := surface.Width
		if surface.Format == FormatP010 {
			rowBytes *= 2
		}
		y, err := Pack2D(surface.Data, rowBytes, surface.Height, surface.Pitch)
		if err != nil {
			return nil, fmt.Errorf("y plane: %w", err)
		}
		if uint32(len(surface.Data)) < surface.UVOffset {
			return nil, fmt.Errorf("uv offset %d past buffer end %d", surface.UVOffset, len(surface.Data))
		}
		uv, err := Pack2D(surface.Data[surface.UVOffset:], rowBytes, (surface.Height+1)/2, surface.Pitch)
		if err != nil {
			return nil, fmt.Errorf("uv plane: %w", err)
		}
		return append(y, uv...), nil
	case FormatYUY2:
		return Pack2D(surface.Data, surface.Width*2, surface.Height, surface.Pitch)
	default:
		return nil, fmt.Errorf("unsupported surface format %d", surface.Format)
	}
}

func surfaceSuffix(f SurfaceFormat) string {
	if f == FormatYUY2 {
		return SurfaceYUY2422[1:]
	}
	return SurfaceYUV420[1:]
}

func slice(data []byte, offset, size uint32) ([]byte, error) {
	end := uint64(offset) + uint64(size)
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("range %d+%d exceeds buffer of %d bytes", offset, size, len(data))
	}
	return data[offset:end], nil
}
