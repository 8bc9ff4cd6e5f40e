// Package spec implements the on-disk primitives of the tilepack format:
// the fixed-size file header, the compressed tile directory and the section
// compression codecs. The directory is keyed by the global tile id, whose
// total order across zoom levels makes it directly usable as a sort key.
package spec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

type Compression uint8

const (
	CompressionUnknown Compression = iota
	CompressionNone
	CompressionGzip
)

type TileType uint8

const (
	TileTypeUnknown TileType = iota
	TileTypeMvt
	TileTypePng
	TileTypeJpeg
	TileTypeWebp
)

type Header struct {
	HeaderMagic         uint64
	DirOffset           uint64
	DirLength           uint64
	MetadataOffset      uint64
	MetadataLength      uint64
	TileDataOffset      uint64
	TileDataLength      uint64
	TileCount           uint64
	EntryCount          uint64
	InternalCompression Compression
	TileCompression     Compression
	TileType            TileType
	MinZoom             uint8
	MaxZoom             uint8
	MinLonE7            int32
	MinLatE7            int32
	MaxLonE7            int32
	MaxLatE7            int32
	CenterZoom          uint8
	CenterLonE7         int32
	CenterLatE7         int32
}

const (
	headerMagic     uint64 = 0x4B4150454C4954 // "TILEPAK"
	headerMagicMask uint64 = 1<<56 - 1
	HeaderMagicV1   uint64 = headerMagic | (0x01 << 56)

	HeaderLength = 102
)

var ErrInvalidHeader = errors.New("invalid file header")
var ErrInvalidVersion = errors.New("invalid version")

func SerializeHeader(header *Header) []byte {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)
	binary.Write(writer, binary.LittleEndian, header)
	writer.Flush()
	return buffer.Bytes()
}

func DeserializeHeader(buffer []byte) (*Header, error) {
	header := Header{}
	reader := bytes.NewReader(buffer)
	err := binary.Read(reader, binary.LittleEndian, &header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if header.HeaderMagic&headerMagicMask != headerMagic {
		return nil, ErrInvalidHeader
	}
	if header.HeaderMagic != HeaderMagicV1 {
		return nil, ErrInvalidVersion
	}
	return &header, nil
}
