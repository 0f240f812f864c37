// Package roundid mints identifiers for 18-hole rounds. An id is a UUIDv7
// rendered as 26 characters of Crockford base32 (lowercase, no i/l/o/u), so
// a directory of round exports lists in creation order and the id survives
// being read aloud over a phone.
package roundid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// RandSource lets tests inject deterministic randomness.
type RandSource interface {
	Intn(n int) int
}

// Generator produces round ids with configurable randomness.
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator; a nil RandSource uses crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// New creates a round id from the default generator.
func New() string {
	return NewGenerator(nil).New()
}

// New creates a round id.
func (g *Generator) New() string {
	return encodeBase32(g.uuidv7())
}

func (g *Generator) uuidv7() [16]byte {
	var id [16]byte

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			id[i] = byte(g.randSource.Intn(256))
		}
	} else {
		if _, err := rand.Read(id[6:]); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
	}

	// 48-bit millisecond timestamp, big-endian, in the first six bytes.
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], uint64(time.Now().UnixMilli()))
	copy(id[:6], ts[2:])

	// Version 7, variant 10.
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return id
}

// encodeBase32 packs 128 bits into 26 base32 characters. The final
// character carries the trailing 3 bits padded with zeros.
func encodeBase32(data [16]byte) string {
	var out [26]byte

	acc, bits, n := 0, 0, 0
	for _, b := range data {
		acc = acc<<8 | int(b)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[n] = alphabet[(acc>>bits)&0x1f]
			n++
		}
	}
	out[n] = alphabet[(acc<<(5-bits))&0x1f]

	return string(out[:])
}

// Validate checks that an id is 26 characters of valid base32. The first
// character caps at '7' because the leading bits of the 48-bit millisecond
// timestamp stay zero for centuries.
func Validate(id string) error {
	if len(id) != 26 {
		return fmt.Errorf("round id must be exactly 26 characters, got %d", len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("round id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}
