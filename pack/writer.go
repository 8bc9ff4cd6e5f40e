package pack

import (
	"bufio"
	"cmp"
	"crypto/md5"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/eak1mov/go-tilegrid/pack/spec"
	"github.com/eak1mov/go-tilegrid/tile"
)

// Writer implements tile.Writer interface for the tilepack format.
// Tiles may arrive in any order; Finalize sorts the directory by global id
// and collapses duplicate-content runs.
type Writer struct {
	logger *slog.Logger
	file   *os.File
	header spec.Header

	tileWriter *bufio.Writer
	tileOffset uint64
	tileCount  uint64

	entries   []spec.Entry
	locations map[[16]byte]uint32 // content hash -> entry index
}

type writerConfig struct {
	Metadata []byte
	Info     Info
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata sets the opaque metadata blob (conventionally JSON) stored
// alongside the tiles.
func WithMetadata(metadata []byte) WriterOption {
	return func(c *writerConfig) { c.Metadata = metadata }
}

func WithInfo(info Info) WriterOption {
	return func(c *writerConfig) { c.Info = info }
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(c *writerConfig) { c.Logger = logger }
}

// NewWriter creates a new Writer for writing to a tilepack file.
// It applies given options and reserves space for the file header.
func NewWriter(filePath string, opts ...WriterOption) (w *Writer, err error) {
	config := writerConfig{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	header := spec.Header{
		HeaderMagic:         spec.HeaderMagicV1,
		InternalCompression: spec.CompressionGzip,
	}
	config.Info.CopyToHeader(&header)

	offset := uint64(spec.HeaderLength)
	_, err = file.Seek(int64(offset), io.SeekStart)
	if err != nil {
		return nil, err
	}

	if config.Metadata != nil {
		_, err = file.Write(config.Metadata)
		if err != nil {
			return nil, err
		}
		header.MetadataOffset = offset
		header.MetadataLength = uint64(len(config.Metadata))
		offset += header.MetadataLength
	}

	header.TileDataOffset = offset

	return &Writer{
		logger:     config.Logger,
		file:       file,
		header:     header,
		tileWriter: bufio.NewWriter(file),
		locations:  make(map[[16]byte]uint32),
	}, nil
}

func (w *Writer) WriteTile(t tile.Tile, tileData []byte) error {
	if len(tileData) == 0 {
		return nil
	}

	w.tileCount++

	digest := md5.Sum(tileData)
	entryIdx, exists := w.locations[digest]

	if exists {
		entry := spec.Entry{
			ID:        t.ID(),
			Offset:    w.entries[entryIdx].Offset,
			Length:    w.entries[entryIdx].Length,
			RunLength: 1,
		}
		w.entries = append(w.entries, entry)
		return nil
	}

	entry := spec.Entry{
		ID:        t.ID(),
		Offset:    w.tileOffset,
		Length:    uint32(len(tileData)),
		RunLength: 1,
	}

	_, err := w.tileWriter.Write(tileData)
	if err != nil {
		return err
	}

	w.tileOffset += uint64(len(tileData))

	w.locations[digest] = uint32(len(w.entries))
	w.entries = append(w.entries, entry)

	return nil
}

func (w *Writer) Finalize() error {
	if w.tileWriter == nil {
		panic("tilegrid: finalize called twice")
	}

	w.logger.Debug("tilegrid: flush")
	err := w.tileWriter.Flush()
	if err != nil {
		return err
	}
	w.header.TileDataLength = w.tileOffset
	w.header.TileCount = w.tileCount
	w.tileWriter = nil

	w.logger.Debug("tilegrid: sort")
	slices.SortFunc(w.entries, func(a, b spec.Entry) int {
		return cmp.Compare(a.ID, b.ID)
	})

	w.logger.Debug("tilegrid: compact")
	w.entries = spec.CompactEntries(w.entries)
	w.header.EntryCount = uint64(len(w.entries))

	w.logger.Debug("tilegrid: write directory")
	dirData := spec.SerializeDirectory(w.entries)
	dirCompressed, err := spec.Compress(dirData, w.header.InternalCompression)
	if err != nil {
		return err
	}
	_, err = w.file.Write(dirCompressed)
	if err != nil {
		return err
	}
	w.header.DirOffset = w.header.TileDataOffset + w.header.TileDataLength
	w.header.DirLength = uint64(len(dirCompressed))

	w.logger.Debug("tilegrid: write header")
	_, err = w.file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	_, err = w.file.Write(spec.SerializeHeader(&w.header))
	if err != nil {
		return err
	}

	w.logger.Debug("tilegrid: flush")
	err = w.file.Close()
	if err != nil {
		return err
	}
	w.file = nil

	w.logger.Debug("tilegrid: done!")
	return nil
}

func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
