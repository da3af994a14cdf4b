package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

var (
	ErrInvalidHash   = errors.New("invalid argon2id hash")
	ErrInvalidParams = errors.New("invalid argon2id parameters")
)

type Params struct {
	MemoryKB    uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams: 64 MiB memory, 4 passes, one lane.
func DefaultParams() Params {
	return Params{
		MemoryKB:    64 * 1024,
		Time:        4,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

type Argon2 struct {
	params Params
	rand   io.Reader
}

func NewArgon2(p Params) (*Argon2, error) {
	if p.MemoryKB < 8*1024 || p.Time < 1 || p.Parallelism < 1 || p.SaltLength < 16 || p.KeyLength < 16 {
		return nil, ErrInvalidParams
	}
	return &Argon2{params: p, rand: rand.Reader}, nil
}

// HashPassword returns a PHC-formatted string: $argon2id$v=19$m=..,t=..,p=..$salt$key.
func (a *Argon2) HashPassword(password string) (string, error) {
	salt := make([]byte, a.params.SaltLength)
	if _, err := io.ReadFull(a.rand, salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, a.params.Time, a.params.MemoryKB, a.params.Parallelism, a.params.KeyLength)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		a.params.MemoryKB,
		a.params.Time,
		a.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// CheckPassword recomputes the key with the parameters stored in encoded and
// compares in constant time. Malformed hashes never match.
func (a *Argon2) CheckPassword(encoded, password string) bool {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false
	}
	computed := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKB, p.Parallelism, uint32(len(key)))
	return subtle.ConstantTimeCompare(computed, key) == 1
}

func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != algorithmID {
		return p, nil, nil, ErrInvalidHash
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return p, nil, nil, ErrInvalidHash
	}

	var memory, time uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &parallelism); err != nil {
		return p, nil, nil, ErrInvalidHash
	}
	if memory == 0 || time == 0 || parallelism == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrInvalidHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, ErrInvalidHash
	}

	p = Params{MemoryKB: memory, Time: time, Parallelism: parallelism, SaltLength: uint32(len(salt)), KeyLength: uint32(len(key))}
	return p, salt, key, nil
}
