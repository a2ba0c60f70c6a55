// Package ginternals contains the plumbing shared by the object store,
// the index, and the builders
package ginternals

import (
	"crypto/sha1"
	"encoding/hex"

	"golang.org/x/xerrors"
)

// OidSize is the length of an oid, in bytes
const OidSize = 20

// NullOid is the zero-value of an Oid
var NullOid = Oid{}

// Oid represents an object ID: the SHA1 of an object's deflated
// on-disk content, or the integrity tag of the index
type Oid [OidSize]byte

// NewOidFromStr creates an Oid from its hex representation.
// For the SHA 9b91da06e69613397b38e0808e0ba5ee6983251b
// the oid will be {0x9b, 0x91, 0xda, ...}
// Both cases are accepted, nothing else is (no prefix, no spaces)
func NewOidFromStr(id string) (Oid, error) {
	if len(id) != OidSize*2 {
		return NullOid, xerrors.Errorf("id %s: %w", id, ErrInvalidOid)
	}

	var oid Oid
	for i := 0; i < OidSize; i++ {
		hi := hexVal(id[i*2])
		lo := hexVal(id[i*2+1])
		if hi == badHexChar || lo == badHexChar {
			return NullOid, xerrors.Errorf("id %s: %w", id, ErrInvalidOid)
		}
		oid[i] = hi<<4 | lo
	}
	return oid, nil
}

// NewOidFromChars creates an Oid from the hex chars of an id.
// For the SHA {'9', 'b', '9', '1', 'd', 'a', ...}
// the oid will be {0x9b, 0x91, 0xda, ...}
func NewOidFromChars(id []byte) (Oid, error) {
	return NewOidFromStr(string(id))
}

// NewOidFromBytes casts a slice containing a raw oid into an Oid object
func NewOidFromBytes(id []byte) (Oid, error) {
	if len(id) != OidSize {
		return NullOid, ErrInvalidOid
	}

	var oid Oid
	copy(oid[:], id)
	return oid, nil
}

// NewOidFromContent returns the oid of the given content.
// The oid will be the SHA1 sum of the content
func NewOidFromContent(data []byte) Oid {
	return sha1.Sum(data)
}

// Bytes returns the raw Oid as []byte.
// This is different than doing []byte(oid.String())
// For the oid 642480605b8b0fd464ab5762e044269cf29a60a3:
// oid.Bytes(): []byte{ 0x64, 0x24, 0x80, ... }
// []byte(oid.String()): []byte{ '6', '4', '2', '4', '8', '0', ... }
func (o Oid) Bytes() []byte {
	return o[:]
}

// String converts an oid to its 40 chars lowercase hex representation
func (o Oid) String() string {
	return hex.EncodeToString(o[:])
}

// IsZero returns whether the oid has the zero value (NullOid)
func (o Oid) IsZero() bool {
	return o == NullOid
}

const badHexChar = ^byte(0)

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return badHexChar
	}
}
