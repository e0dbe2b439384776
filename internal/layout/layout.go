// Package layout implements the textual transfer codec used to copy a
// placed tower layout out of one running session and into another: a
// single line of the form "maze:v2:<cols>x<rows>:<base64url-nopad>".
package layout

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/toejough/maze-defence/internal/simcore"
)

const (
	snapshotDomain     = "maze"
	snapshotVersionV2  = "v2"
	snapshotHeaderV2   = snapshotDomain + ":" + snapshotVersionV2
	fieldDelimiter     = ":"
	maxVarintBytes     = 5
)

// Tower describes a single placed tower captured by a snapshot.
type Tower struct {
	Kind   simcore.TowerKind
	Origin simcore.CellCoord
}

// Snapshot is the layout state a transfer string round-trips: the grid
// dimensions and scale it was captured against, plus every placed tower.
type Snapshot struct {
	Columns      uint32
	Rows         uint32
	TileLength   float32
	CellsPerTile uint32
	Towers       []Tower
}

// Error enumerates the ways a transfer string can fail to decode.
type Error struct {
	kind    errorKind
	detail  string
	byteVal uint8
}

type errorKind int

const (
	errEmptyPayload errorKind = iota
	errMissingPrefix
	errMissingVersion
	errMissingDimensions
	errMissingPayload
	errInvalidPrefix
	errUnsupportedVersion
	errInvalidDimensions
	errInvalidEncoding
	errTruncatedBinaryPayload
	errVarintOverflow
	errUnknownTowerKind
	errTrailingBinaryData
)

func (e *Error) Error() string {
	switch e.kind {
	case errEmptyPayload:
		return "clipboard payload was empty"
	case errMissingPrefix:
		return "layout string is missing the prefix"
	case errMissingVersion:
		return "layout string is missing the version"
	case errMissingDimensions:
		return "layout string is missing the grid dimensions"
	case errMissingPayload:
		return "layout string is missing the payload"
	case errInvalidPrefix:
		return fmt.Sprintf("layout prefix %q is not supported", e.detail)
	case errUnsupportedVersion:
		return fmt.Sprintf("layout version %q is not supported", e.detail)
	case errInvalidDimensions:
		return fmt.Sprintf("could not parse grid dimensions %q", e.detail)
	case errInvalidEncoding:
		return fmt.Sprintf("could not decode layout payload: %s", e.detail)
	case errTruncatedBinaryPayload:
		return "binary layout payload terminated unexpectedly"
	case errVarintOverflow:
		return "binary layout payload used an oversized varint"
	case errUnknownTowerKind:
		return fmt.Sprintf("binary layout payload referenced unknown tower kind %d", e.byteVal)
	case errTrailingBinaryData:
		return "binary layout payload contained trailing bytes"
	default:
		return "unknown layout transfer error"
	}
}

// Encode renders the snapshot into the single-line transfer string.
func Encode(snapshot Snapshot) string {
	payload := make([]byte, 0, 8+len(snapshot.Towers)*5)
	payload = appendVarint(payload, snapshot.CellsPerTile)
	var lengthBits [4]byte
	putLittleEndianU32(lengthBits[:], math.Float32bits(snapshot.TileLength))
	payload = append(payload, lengthBits[:]...)
	payload = appendVarint(payload, uint32(len(snapshot.Towers)))
	for _, tower := range snapshot.Towers {
		payload = append(payload, encodeTowerKind(tower.Kind))
		payload = appendVarint(payload, tower.Origin.Column)
		payload = appendVarint(payload, tower.Origin.Row)
	}

	encoded := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(payload)
	return fmt.Sprintf("%s:%dx%d:%s", snapshotHeaderV2, snapshot.Columns, snapshot.Rows, encoded)
}

// Decode parses a transfer string produced by Encode, rejecting anything
// that does not round-trip bit-for-bit.
func Decode(value string) (Snapshot, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Snapshot{}, &Error{kind: errEmptyPayload}
	}

	parts := strings.SplitN(trimmed, fieldDelimiter, 4)
	if len(parts) < 1 || parts[0] == "" {
		return Snapshot{}, &Error{kind: errMissingPrefix}
	}
	if len(parts) < 2 {
		return Snapshot{}, &Error{kind: errMissingVersion}
	}
	if len(parts) < 3 {
		return Snapshot{}, &Error{kind: errMissingDimensions}
	}
	if len(parts) < 4 {
		return Snapshot{}, &Error{kind: errMissingPayload}
	}

	domain, version, dimensions, payload := parts[0], parts[1], parts[2], parts[3]
	if domain != snapshotDomain {
		return Snapshot{}, &Error{kind: errInvalidPrefix, detail: domain}
	}

	columns, rows, err := parseDimensions(dimensions)
	if err != nil {
		return Snapshot{}, err
	}
	if version != snapshotVersionV2 {
		return Snapshot{}, &Error{kind: errUnsupportedVersion, detail: version}
	}

	return decodeV2(columns, rows, payload)
}

func decodeV2(columns, rows uint32, payload string) (Snapshot, error) {
	bytes, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(payload)
	if err != nil {
		return Snapshot{}, &Error{kind: errInvalidEncoding, detail: err.Error()}
	}

	cursor := 0
	cellsPerTile, err := decodeVarint(bytes, &cursor)
	if err != nil {
		return Snapshot{}, err
	}
	lengthBits, err := readU32(bytes, &cursor)
	if err != nil {
		return Snapshot{}, err
	}
	tileLength := math.Float32frombits(lengthBits)

	towerCount, err := decodeVarint(bytes, &cursor)
	if err != nil {
		return Snapshot{}, err
	}

	towers := make([]Tower, 0, towerCount)
	for i := uint32(0); i < towerCount; i++ {
		kindByte, err := readU8(bytes, &cursor)
		if err != nil {
			return Snapshot{}, err
		}
		kind, err := decodeTowerKind(kindByte)
		if err != nil {
			return Snapshot{}, err
		}
		column, err := decodeVarint(bytes, &cursor)
		if err != nil {
			return Snapshot{}, err
		}
		row, err := decodeVarint(bytes, &cursor)
		if err != nil {
			return Snapshot{}, err
		}
		towers = append(towers, Tower{Kind: kind, Origin: simcore.NewCellCoord(column, row)})
	}

	if cursor != len(bytes) {
		return Snapshot{}, &Error{kind: errTrailingBinaryData}
	}

	return Snapshot{
		Columns:      columns,
		Rows:         rows,
		TileLength:   tileLength,
		CellsPerTile: cellsPerTile,
		Towers:       towers,
	}, nil
}

func appendVarint(buffer []byte, value uint32) []byte {
	for {
		b := byte(value & 0x7f)
		value >>= 7
		if value == 0 {
			return append(buffer, b)
		}
		buffer = append(buffer, b|0x80)
	}
}

func decodeVarint(bytes []byte, cursor *int) (uint32, error) {
	var value uint32
	var shift uint32
	for i := 0; i < maxVarintBytes; i++ {
		if *cursor >= len(bytes) {
			return 0, &Error{kind: errTruncatedBinaryPayload}
		}
		b := bytes[*cursor]
		*cursor++
		value |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}
		shift += 7
	}
	return 0, &Error{kind: errVarintOverflow}
}

func readU32(bytes []byte, cursor *int) (uint32, error) {
	if len(bytes)-*cursor < 4 {
		return 0, &Error{kind: errTruncatedBinaryPayload}
	}
	value := littleEndianU32(bytes[*cursor : *cursor+4])
	*cursor += 4
	return value, nil
}

func readU8(bytes []byte, cursor *int) (uint8, error) {
	if *cursor >= len(bytes) {
		return 0, &Error{kind: errTruncatedBinaryPayload}
	}
	b := bytes[*cursor]
	*cursor++
	return b, nil
}

func putLittleEndianU32(dst []byte, value uint32) {
	dst[0] = byte(value)
	dst[1] = byte(value >> 8)
	dst[2] = byte(value >> 16)
	dst[3] = byte(value >> 24)
}

func littleEndianU32(src []byte) uint32 {
	return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
}

func encodeTowerKind(kind simcore.TowerKind) byte {
	switch kind {
	case simcore.TowerBasic:
		return 0
	default:
		return 0
	}
}

func decodeTowerKind(value byte) (simcore.TowerKind, error) {
	switch value {
	case 0:
		return simcore.TowerBasic, nil
	default:
		return 0, &Error{kind: errUnknownTowerKind, byteVal: value}
	}
}

func parseDimensions(dimensions string) (columns, rows uint32, err error) {
	x := strings.IndexAny(dimensions, "xX")
	if x < 0 {
		return 0, 0, &Error{kind: errInvalidDimensions, detail: dimensions}
	}
	columnsPart := strings.TrimSpace(dimensions[:x])
	rowsPart := strings.TrimSpace(dimensions[x+1:])

	parsedColumns, convErr := strconv.ParseUint(columnsPart, 10, 32)
	if convErr != nil {
		return 0, 0, &Error{kind: errInvalidDimensions, detail: dimensions}
	}
	parsedRows, convErr := strconv.ParseUint(rowsPart, 10, 32)
	if convErr != nil {
		return 0, 0, &Error{kind: errInvalidDimensions, detail: dimensions}
	}
	if parsedColumns == 0 || parsedRows == 0 {
		return 0, 0, &Error{kind: errInvalidDimensions, detail: dimensions}
	}
	return uint32(parsedColumns), uint32(parsedRows), nil
}
