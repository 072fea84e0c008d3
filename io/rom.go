package io

// Rom supplies Data one byte per IN, then zeros.
// Rewind restarts from the first byte.
type Rom struct {
	Data []byte

	ReadIndex int
}

var _ Port = (*Rom)(nil)

func (rc *Rom) Rewind() {
	rc.ReadIndex = 0
}

func (rc *Rom) In() (value byte, err error) {
	if rc.ReadIndex < len(rc.Data) {
		value = rc.Data[rc.ReadIndex]
		rc.ReadIndex++
	}
	return
}

func (rc *Rom) Out(value byte) error {
	return ErrPortReadOnly
}
