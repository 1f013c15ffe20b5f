package kv

import (
	"github.com/klauspost/compress/zstd"
)

// zstd frame magic number; values without it are passed through
// unchanged so stores written before compression was enabled stay
// readable.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Compressed wraps a Store and zstd-compresses values on the way in.
type Compressed struct {
	inner Store
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

func NewCompressed(inner Store) (*Compressed, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Compressed{inner: inner, enc: enc, dec: dec}, nil
}

func (c *Compressed) Get(key string) ([]byte, bool, error) {
	v, found, err := c.inner.Get(key)
	if err != nil || !found {
		return nil, found, err
	}
	if !hasZstdMagic(v) {
		return v, true, nil
	}
	out, err := c.dec.DecodeAll(v, nil)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (c *Compressed) Set(key string, value []byte) error {
	return c.inner.Set(key, c.enc.EncodeAll(value, nil))
}

func (c *Compressed) Delete(key string) error {
	return c.inner.Delete(key)
}

// Close releases the codecs and the wrapped store if it owns
// resources.
func (c *Compressed) Close() error {
	_ = c.enc.Close()
	c.dec.Close()
	if cl, ok := c.inner.(interface{ Close() error }); ok {
		return cl.Close()
	}
	return nil
}

func hasZstdMagic(b []byte) bool {
	if len(b) < len(zstdMagic) {
		return false
	}
	for i, m := range zstdMagic {
		if b[i] != m {
			return false
		}
	}
	return true
}
