package pack

import (
	"os"

	"github.com/eak1mov/go-tilegrid/pack/spec"
	"github.com/eak1mov/go-tilegrid/tile"
)

// FileAccessFunc reads length bytes at the absolute file offset. It lets a
// Reader work over any random-access source (local file, mmap, range
// requests against object storage).
type FileAccessFunc = func(offset, length uint64) ([]byte, error)

// Reader implements tile.Reader interface for the tilepack format.
// The directory is read and decoded once, on first lookup.
type Reader struct {
	fileAccess FileAccessFunc
	fileCloser func() error
	header     *spec.Header
	entries    []spec.Entry
}

// NewFileReader creates a new Reader for the given tilepack file path.
//
// The returned Reader must be closed after use to release the file handle.
func NewFileReader(filePath string) (*Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	fileAccess := func(offset, length uint64) ([]byte, error) {
		buffer := make([]byte, length)
		if _, err := file.ReadAt(buffer, int64(offset)); err != nil {
			return nil, err
		}
		return buffer, nil
	}

	reader, err := NewReader(fileAccess)
	if err != nil {
		file.Close()
		return nil, err
	}
	reader.fileCloser = func() error { return file.Close() }
	return reader, nil
}

// NewReader creates a new Reader over an arbitrary random-access source.
func NewReader(fileAccess FileAccessFunc) (*Reader, error) {
	headerData, err := fileAccess(0, spec.HeaderLength)
	if err != nil {
		return nil, err
	}
	header, err := spec.DeserializeHeader(headerData)
	if err != nil {
		return nil, err
	}
	return &Reader{
		fileAccess: fileAccess,
		fileCloser: func() error { return nil },
		header:     header,
	}, nil
}

func (r *Reader) Close() error {
	return r.fileCloser()
}

func (r *Reader) Info() Info {
	result := Info{}
	result.CopyFromHeader(r.header)
	return result
}

// ReadMetadata returns the opaque metadata blob, empty if none was written.
func (r *Reader) ReadMetadata() ([]byte, error) {
	return r.fileAccess(r.header.MetadataOffset, r.header.MetadataLength)
}

func (r *Reader) directory() ([]spec.Entry, error) {
	if r.entries != nil {
		return r.entries, nil
	}

	dirCompressed, err := r.fileAccess(r.header.DirOffset, r.header.DirLength)
	if err != nil {
		return nil, err
	}
	dirData, err := spec.Decompress(dirCompressed, r.header.InternalCompression)
	if err != nil {
		return nil, err
	}
	entries, err := spec.DeserializeDirectory(dirData)
	if err != nil {
		return nil, err
	}

	r.entries = entries
	return entries, nil
}

// ReadLocation returns where the tile data lives inside the file, or the
// zero Location if the tile is not present.
func (r *Reader) ReadLocation(t tile.Tile) (tile.Location, error) {
	entries, err := r.directory()
	if err != nil {
		return tile.Location{}, err
	}

	entry, found := spec.FindEntry(entries, t.ID())
	if !found {
		return tile.Location{}, nil
	}
	return tile.Location{
		Offset: r.header.TileDataOffset + entry.Offset,
		Length: uint64(entry.Length),
	}, nil
}

func (r *Reader) ReadTile(t tile.Tile) ([]byte, error) {
	location, err := r.ReadLocation(t)
	if err != nil {
		return nil, err
	}
	if location.Length == 0 {
		return make([]byte, 0), nil
	}
	return r.fileAccess(location.Offset, location.Length)
}

// VisitLocations visits tiles in ascending global id order, expanding
// deduplicated runs, so several tiles may share one location.
func (r *Reader) VisitLocations(visitor func(tile.Tile, tile.Location) error) error {
	entries, err := r.directory()
	if err != nil {
		return err
	}

	for _, entry := range entries {
		for i := range entry.RunLength {
			location := tile.Location{
				Offset: r.header.TileDataOffset + entry.Offset,
				Length: uint64(entry.Length),
			}
			if err := visitor(tile.FromID(entry.ID+uint64(i)), location); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Reader) VisitTiles(visitor func(tile.Tile, []byte) error) error {
	return r.VisitLocations(func(t tile.Tile, location tile.Location) error {
		tileData, err := r.fileAccess(location.Offset, location.Length)
		if err != nil {
			return err
		}
		return visitor(t, tileData)
	})
}
