package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26-character Crockford Base32 strings with a
// millisecond timestamp prefix, so IDs sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes.
	rand.Read(b[6:])
	// Embed sequence in bytes 6-7 to ensure uniqueness within same ms.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeULID(b)
}

// encodeULID renders 128 bits as 26 Crockford Base32 characters by
// consuming the byte array as a bit stream, 5 bits per character. The
// first character only carries 3 bits, which keeps the timestamp
// aligned to the standard 10-character prefix.
func encodeULID(b [16]byte) string {
	var out [26]byte
	bitPos := -2 // 128 bits into 26*5 = 130; pad 2 zero bits up front.
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			pos := bitPos + j
			if pos >= 0 && b[pos/8]&(1<<(7-pos%8)) != 0 {
				v |= 1
			}
		}
		out[i] = crockford[v]
		bitPos += 5
	}
	return string(out[:])
}
