package nau7802

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeConversion_SignExtension(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want int32
	}{
		{name: "plus one", raw: []byte{0x00, 0x00, 0x01}, want: 1},
		{name: "minus one", raw: []byte{0xFF, 0xFF, 0xFF}, want: -1},
		{name: "minimum", raw: []byte{0x80, 0x00, 0x00}, want: -8388608},
		{name: "maximum", raw: []byte{0x7F, 0xFF, 0xFF}, want: 8388607},
		{name: "zero", raw: []byte{0x00, 0x00, 0x00}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeConversion(tt.raw))
		})
	}
}

func TestFieldDeclarations(t *testing.T) {
	// The mask encodes the field's own bits as zero; shifting the widest legal
	// value into the cleared span must not leak outside it.
	tests := []struct {
		name string
		f    field
		max  byte
	}{
		{name: "gain", f: gainField, max: byte(Gain128)},
		{name: "ldo", f: ldoField, max: byte(LDO2V4)},
		{name: "sample rate", f: rateField, max: byte(SPS320)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := ^tt.f.mask
			assert.Zero(t, tt.max<<tt.f.shift & ^span, "value escapes the field span")
			assert.Equal(t, span, byte(0b111)<<tt.f.shift, "mask and shift disagree")
		})
	}
}

func TestBitIndexes(t *testing.T) {
	assert.Equal(t, uint8(3), PuCtrlPUR.Index())
	assert.Equal(t, uint8(5), PuCtrlCR.Index())
	assert.Equal(t, uint8(2), Ctrl2CALS.Index())
	assert.Equal(t, uint8(3), Ctrl2CalError.Index())
	assert.Equal(t, uint8(7), PgaPwrCapEn.Index())
}

func TestOptionStrings(t *testing.T) {
	assert.Equal(t, "x128", Gain128.String())
	assert.Equal(t, "3.3V", LDO3V3.String())
	assert.Equal(t, "10SPS", SPS10.String())
	assert.Equal(t, "unknown", SampleRate(0b100).String())
}
