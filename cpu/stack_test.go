package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_Push(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SP = 0x1000

	cpu.Push(0x1234)
	assert.Equal(uint16(0x0ffe), cpu.SP)
	assert.Equal(byte(0x12), cpu.Memory[0x0fff])
	assert.Equal(byte(0x34), cpu.Memory[0x0ffe])
}

func TestStack_Pop(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SP = 0x1000
	cpu.Push(0x1234)
	cpu.Push(0xabcd)

	assert.Equal(uint16(0xabcd), cpu.Pop())
	assert.Equal(uint16(0x0ffe), cpu.SP)
	assert.Equal(uint16(0x1234), cpu.Pop())
	assert.Equal(uint16(0x1000), cpu.SP)
}

func TestStack_Peek(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.SP = 0x1000
	cpu.Push(0xabcd)

	assert.Equal(uint16(0xabcd), cpu.Peek())
	assert.Equal(uint16(0x0ffe), cpu.SP)
}

func TestStack_Wrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Push(0xbeef)
	assert.Equal(uint16(0xfffe), cpu.SP)
	assert.Equal(byte(0xbe), cpu.Memory[0xffff])

	assert.Equal(uint16(0xbeef), cpu.Pop())
	assert.Equal(uint16(0), cpu.SP)
}
