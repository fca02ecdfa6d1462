// Package util provides shared helpers for CH-PMS.
package util

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces UUIDv7 staff record identifiers with monotonic
// timestamps, so IDs sort by creation time.
type IDGenerator struct {
	mu       sync.Mutex
	lastTime int64
	counter  uint16
}

var generator = &IDGenerator{}

// NewID generates a new UUIDv7 identifier.
func NewID() string {
	return generator.NewID()
}

// NewID generates a new UUIDv7 identifier from this generator.
func (g *IDGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now == g.lastTime {
		g.counter++
		if g.counter == 0 {
			for now == g.lastTime {
				time.Sleep(100 * time.Microsecond)
				now = time.Now().UnixMilli()
			}
		}
	} else {
		g.lastTime = now
		g.counter = 0
	}

	return formatUUIDv7(now, g.counter)
}

func formatUUIDv7(unixMilli int64, counter uint16) string {
	var id [16]byte

	// 48-bit millisecond timestamp, big endian.
	binary.BigEndian.PutUint32(id[0:4], uint32(unixMilli>>16))
	binary.BigEndian.PutUint16(id[4:6], uint16(unixMilli))

	// Version 7 plus the counter in the rand_a bits.
	id[6] = 0x70 | (byte(counter>>8) & 0x0F)
	id[7] = byte(counter)

	rand.Read(id[8:])
	id[8] = (id[8] & 0x3F) | 0x80 // RFC 4122 variant

	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// IsValidID checks whether a string is a well-formed UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
