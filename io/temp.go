package io

// Temporary implements a circular buffer for temporary byte storage.
// It operates as a FIFO queue with a fixed capacity and separate read/write positions.
type Temporary struct {
	Capacity int // Capacity in bytes.

	ReadIndex  int
	WriteIndex int
	Size       int
	Data       []byte
}

var _ Port = (*Temporary)(nil)

// Rewind resets the temporary storage to empty, resetting indices and
// reinitializing the data buffer.
func (temp *Temporary) Rewind() {
	temp.ReadIndex = 0
	temp.WriteIndex = 0
	temp.Size = 0
	temp.Data = make([]byte, temp.Capacity)
}

// In reads the oldest byte in the buffer.
// Returns ErrPortEmpty if the buffer is empty.
func (temp *Temporary) In() (value byte, err error) {
	if temp.Size == 0 {
		err = ErrPortEmpty
		return
	}

	value = temp.Data[temp.ReadIndex]
	temp.ReadIndex++
	if temp.ReadIndex == temp.Capacity {
		temp.ReadIndex = 0
	}
	temp.Size--

	return
}

// Out writes a byte to the buffer at the current write position.
// Returns ErrPortFull if the buffer has reached capacity.
func (temp *Temporary) Out(value byte) (err error) {
	if temp.Size >= temp.Capacity {
		err = ErrPortFull
		return
	}
	if len(temp.Data) != temp.Capacity {
		temp.Rewind()
	}

	temp.Data[temp.WriteIndex] = value

	temp.WriteIndex++
	if temp.WriteIndex == temp.Capacity {
		temp.WriteIndex = 0
	}
	temp.Size++

	return
}
