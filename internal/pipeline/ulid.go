package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// ULIDs are 26-character Crockford Base32 strings: a 48-bit millisecond
// timestamp followed by 80 bits of entropy. Within one millisecond the
// first two entropy bytes carry a counter so ids sort in creation order.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDSource generates monotonic job ids.
type ULIDSource struct {
	mu      sync.Mutex
	now     func() time.Time
	lastTS  uint64
	lastSeq uint16
}

func NewULIDSource() *ULIDSource {
	return &ULIDSource{now: time.Now}
}

// New returns the next id.
func (u *ULIDSource) New() string {
	u.mu.Lock()
	ts := uint64(u.now().UnixMilli())
	if ts == u.lastTS {
		u.lastSeq++
	} else {
		u.lastTS = ts
		u.lastSeq = 0
	}
	seq := u.lastSeq
	u.mu.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ts<<16)
	rand.Read(b[8:])
	binary.BigEndian.PutUint16(b[6:8], seq)
	return encodeULID(b)
}

// encodeULID writes 128 bits as 26 base32 digits, most significant first.
// The leading digit holds only the top 3 bits.
func encodeULID(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
