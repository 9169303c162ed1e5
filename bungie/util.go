package bungie

import (
	"strconv"
	"time"
)

// parseInt64 parses the string-encoded 64-bit integers (membership ids,
// instance ids, character ids) the upstream API sends as JSON strings.
func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseUint32 parses a bare decimal string into a uint32, used for the
// numeric medal-hash keys embedded in a PGCR entry's extended.values map.
func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// parseUpstreamTime parses the ISO-8601 'Z'-suffixed timestamps the upstream
// API uses, as UTC.
func parseUpstreamTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ConvertHashToID normalizes a 32-bit manifest content hash to the signed
// 64-bit id used as its primary key: values with the high bit set wrap to
// negative (§6.2).
func ConvertHashToID(hash uint32) int64 {
	id := int64(hash)
	if id&(1<<31) != 0 {
		id -= 1 << 32
	}
	return id
}
