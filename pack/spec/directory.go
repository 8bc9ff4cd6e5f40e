package spec

import (
	"bytes"
	"encoding/binary"
	"sort"
)

// Entry maps a run of consecutive global tile ids to one stretch of the tile
// data section. A RunLength above 1 means RunLength tiles starting at ID all
// share the same data (content-deduplicated by the writer).
type Entry struct {
	ID        uint64
	Offset    uint64
	Length    uint32
	RunLength uint32
}

// SerializeDirectory encodes entries, which must be sorted by ID, as
// column-wise uvarints with ids delta-coded against the previous entry.
func SerializeDirectory(entries []Entry) []byte {
	buffer := make([]byte, 0)

	buffer = binary.AppendUvarint(buffer, uint64(len(entries)))

	lastID := uint64(0)
	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, entry.ID-lastID)
		lastID = entry.ID
	}

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.RunLength))
	}

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.Length))
	}

	nextOffset := uint64(0)
	for i, entry := range entries {
		if i > 0 && entry.Offset == nextOffset {
			buffer = binary.AppendUvarint(buffer, 0)
		} else {
			buffer = binary.AppendUvarint(buffer, entry.Offset+1)
		}
		nextOffset = entry.Offset + uint64(entry.Length)
	}

	return buffer
}

func DeserializeDirectory(data []byte) ([]Entry, error) {
	byteReader := bytes.NewReader(data)

	var err error
	readUvarint := func() uint64 {
		if err != nil {
			return 0
		}
		var value uint64
		value, err = binary.ReadUvarint(byteReader)
		return value
	}

	numEntries := readUvarint()
	entries := make([]Entry, numEntries)

	lastID := uint64(0)
	for i := range numEntries {
		value := readUvarint()
		entries[i].ID = lastID + value
		lastID += value
	}

	for i := range numEntries {
		entries[i].RunLength = uint32(readUvarint())
	}

	for i := range numEntries {
		entries[i].Length = uint32(readUvarint())
	}

	for i := range numEntries {
		value := readUvarint()
		if value == 0 && i > 0 {
			entries[i].Offset = entries[i-1].Offset + uint64(entries[i-1].Length)
		} else {
			entries[i].Offset = value - 1
		}
	}

	return entries, err
}

// CompactEntries merges sorted entries whose ids continue the previous run
// and whose data location is identical.
func CompactEntries(entries []Entry) []Entry {
	if len(entries) == 0 {
		return entries
	}
	wi := 0
	for ri := 1; ri < len(entries); ri++ {
		if entries[ri].Offset == entries[wi].Offset &&
			entries[ri].ID == entries[wi].ID+uint64(entries[wi].RunLength) {
			entries[wi].RunLength++
		} else {
			wi++
			entries[wi] = entries[ri]
		}
	}
	return entries[:wi+1]
}

// FindEntry binary-searches sorted entries for the run covering the id.
func FindEntry(entries []Entry, id uint64) (Entry, bool) {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].ID > id
	})

	if idx == 0 {
		return Entry{}, false
	}

	entry := entries[idx-1]
	if id < entry.ID+uint64(entry.RunLength) {
		return entry, true
	}

	return Entry{}, false
}
