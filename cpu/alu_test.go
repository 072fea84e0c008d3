package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParity(t *testing.T) {
	assert := assert.New(t)

	assert.True(parityTable[0x00])
	assert.False(parityTable[0x01])
	assert.True(parityTable[0x03])
	assert.False(parityTable[0x07])
	assert.True(parityTable[0xff])
}

func TestUpZSPC(t *testing.T) {
	assert := assert.New(t)

	for value := range 512 {
		flags := upZSPC(FLAGS_RESET, value, true)

		b := byte(value)
		assert.Equal(b == 0, flags&byte(FLAG_ZERO) != 0, value)
		assert.Equal(b >= 0x80, flags&byte(FLAG_SIGN) != 0, value)
		assert.Equal(parityTable[b], flags&byte(FLAG_PARITY) != 0, value)
		assert.Equal(value >= 0x100, flags&byte(FLAG_CARRY) != 0, value)
		assert.NotZero(flags & byte(FLAG_ONE))
	}

	// Carry is untouched when not requested.
	flags := upZSPC(byte(FLAG_CARRY), 0x10, false)
	assert.Equal(byte(FLAG_CARRY), flags)
}

func TestAdd(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b   byte
		carry  int
		result byte
		flags  []Flag
	}{
		{0x00, 0x00, 0, 0x00, []Flag{FLAG_ZERO, FLAG_PARITY}},
		{0x0f, 0x01, 0, 0x10, []Flag{FLAG_AUX}},
		{0x7f, 0x01, 0, 0x80, []Flag{FLAG_SIGN, FLAG_AUX}},
		{0x80, 0x80, 0, 0x00, []Flag{FLAG_ZERO, FLAG_PARITY, FLAG_CARRY}},
		{0x01, 0x01, 1, 0x03, []Flag{FLAG_PARITY}},
		{0xff, 0x00, 1, 0x00, []Flag{FLAG_ZERO, FLAG_PARITY, FLAG_CARRY, FLAG_AUX}},
	}

	for _, entry := range table {
		cpu := NewCpu()
		result := cpu.add(entry.a, entry.b, entry.carry)
		assert.Equal(entry.result, result, entry)

		expected := FLAGS_RESET
		for _, f := range entry.flags {
			expected |= byte(f)
		}
		assert.Equal(expected, cpu.Flags, entry)
	}
}

func TestSub(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		a, b   byte
		borrow int
		result byte
		flags  []Flag
	}{
		{0x05, 0x05, 0, 0x00, []Flag{FLAG_ZERO, FLAG_PARITY, FLAG_AUX}},
		{0x10, 0x01, 0, 0x0f, []Flag{FLAG_PARITY}},
		{0x00, 0x01, 0, 0xff, []Flag{FLAG_SIGN, FLAG_PARITY, FLAG_CARRY}},
		{0x05, 0x01, 1, 0x03, []Flag{FLAG_PARITY, FLAG_AUX}},
	}

	for _, entry := range table {
		cpu := NewCpu()
		result := cpu.sub(entry.a, entry.b, entry.borrow)
		assert.Equal(entry.result, result, entry)

		expected := FLAGS_RESET
		for _, f := range entry.flags {
			expected |= byte(f)
		}
		assert.Equal(expected, cpu.Flags, entry)
	}
}

func TestDaa(t *testing.T) {
	assert := assert.New(t)

	// Sum every pair of two digit decimals.
	for x := range 100 {
		for y := range 100 {
			cpu := NewCpu()
			a := byte(x/10<<4 | x%10)
			b := byte(y/10<<4 | y%10)

			cpu.A = cpu.add(a, b, 0)
			cpu.daa()

			sum := x + y
			expected := byte((sum%100)/10<<4 | sum%10)
			assert.Equal(expected, cpu.A, "%d + %d", x, y)
			assert.Equal(sum >= 100, cpu.flag(FLAG_CARRY), "%d + %d", x, y)
		}
	}
}

func TestCondition(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	assert.True(cpu.condition(COND_NZ))
	assert.False(cpu.condition(COND_Z))
	assert.True(cpu.condition(COND_NC))
	assert.False(cpu.condition(COND_C))
	assert.True(cpu.condition(COND_PO))
	assert.False(cpu.condition(COND_PE))
	assert.True(cpu.condition(COND_P))
	assert.False(cpu.condition(COND_M))
	assert.True(cpu.condition(COND_ALWAYS))

	cpu.Flags = 0xff
	assert.False(cpu.condition(COND_NZ))
	assert.True(cpu.condition(COND_Z))
	assert.False(cpu.condition(COND_NC))
	assert.True(cpu.condition(COND_C))
	assert.False(cpu.condition(COND_PO))
	assert.True(cpu.condition(COND_PE))
	assert.False(cpu.condition(COND_P))
	assert.True(cpu.condition(COND_M))
	assert.True(cpu.condition(COND_ALWAYS))
}
