package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/kirill778/naviserv/contracts"
	"math"
)

var SerializerError = errors.New("invalid serialized data")

const coordinatesSize = 8

// CellBinarySerializer stores coordinates as big-endian uint32 pairs,
// so bbolt cursor order of keys is row-major order of cells.
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) MarshalKey(ref contracts.CellRef) []byte {
	key := make([]byte, 0, coordinatesSize)
	key = binary.BigEndian.AppendUint32(key, clampCoordinate(ref.Row))
	return binary.BigEndian.AppendUint32(key, clampCoordinate(ref.Col))
}

func (s *CellBinarySerializer) UnmarshalKey(key []byte) (ref contracts.CellRef, err error) {
	if len(key) != coordinatesSize {
		return ref, fmt.Errorf("%w: key should be %d bytes (key: %v)", SerializerError, coordinatesSize, key)
	}

	ref.Row = int(binary.BigEndian.Uint32(key))
	ref.Col = int(binary.BigEndian.Uint32(key[4:]))
	return
}

func (s *CellBinarySerializer) Marshal(ref contracts.CellRef, value string) []byte {
	serializedData := make([]byte, 0, coordinatesSize+len(value))
	serializedData = append(serializedData, s.MarshalKey(ref)...)
	return append(serializedData, value...)
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (ref contracts.CellRef, value string, err error) {
	if len(data) < coordinatesSize {
		return ref, "", fmt.Errorf("%w: should be at least %d bytes (data: %v)", SerializerError, coordinatesSize, string(data))
	}

	ref, err = s.UnmarshalKey(data[:coordinatesSize])
	value = string(data[coordinatesSize:])
	return
}

func clampCoordinate(coordinate int) uint32 {
	if coordinate < 0 {
		return 0
	}
	if uint64(coordinate) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(coordinate)
}
