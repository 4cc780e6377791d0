package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByte(t *testing.T) {
	cases := []struct {
		in, want byte
	}{
		{0x09, 0x09},
		{0x0A, 0x0A},
		{0x0D, 0x0D},
		{0x00, 0x20},
		{0x1F, 0x20},
		{'A', 'a'},
		{'Z', 'z'},
		{'a', 'a'},
		{' ', ' '},
		{'~', '~'},
		{0x7F, 0x7F},
		{0x80, 0x80},
		{0xFF, 0xFF},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, Byte(c.in), "normalize.Byte(%#02x)", c.in)
	}
}

func TestByteTotal(t *testing.T) {
	// Byte must be defined for every possible input and never panic.
	for i := 0; i < 256; i++ {
		_ = Byte(byte(i))
	}
}
