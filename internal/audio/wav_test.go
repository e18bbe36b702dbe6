package audio

import (
	"bytes"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPCMHeader(t *testing.T) {
	pcm := make([]byte, 8)
	out := WrapPCM(pcm, 44100, 1)

	require.Len(t, out, HeaderSize+8)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, "data", string(out[36:40]))

	decoder := wav.NewDecoder(bytes.NewReader(out))
	decoder.ReadInfo()
	require.True(t, decoder.IsValidFile())
	assert.Equal(t, uint32(44100), decoder.SampleRate)
	assert.Equal(t, uint16(1), decoder.NumChans)
	assert.Equal(t, uint16(16), decoder.BitDepth)
}

func TestPCM16FromFloats(t *testing.T) {
	pcm := PCM16FromFloats([]float32{0, 1, -1, 0.5})

	require.Len(t, pcm, 8)
	assert.Equal(t, []byte{0, 0}, pcm[0:2])
	// 32767 little-endian
	assert.Equal(t, []byte{0xff, 0x7f}, pcm[2:4])
	// -32767 little-endian
	assert.Equal(t, []byte{0x01, 0x80}, pcm[4:6])
}

func TestPCM16FromFloatsClamps(t *testing.T) {
	pcm := PCM16FromFloats([]float32{2.5, -7})

	assert.Equal(t, []byte{0xff, 0x7f}, pcm[0:2])
	assert.Equal(t, []byte{0x01, 0x80}, pcm[2:4])
}

func TestSilenceFrameCount(t *testing.T) {
	assert.Len(t, Silence(5, 44100, 1), 5*44100*2)
	assert.Len(t, Silence(0, 44100, 1), 0)
	assert.Len(t, Silence(-3, 44100, 1), 0)
	assert.Len(t, Silence(1, 22050, 2), 22050*2*2)
}

func TestSilenceIsAllZero(t *testing.T) {
	pcm := Silence(1, 8000, 1)
	assert.Equal(t, make([]byte, 8000*2), pcm)
}

func TestSilenceWAVDecodes(t *testing.T) {
	out := SilenceWAV(2, 44100, 1)

	decoder := wav.NewDecoder(bytes.NewReader(out))
	buf, err := decoder.FullPCMBuffer()
	require.NoError(t, err)

	require.Len(t, buf.Data, 2*44100)
	for _, v := range buf.Data {
		require.Zero(t, v)
	}
}

func TestZeroDurationWAVStillValid(t *testing.T) {
	out := SilenceWAV(0, 44100, 1)

	require.Len(t, out, HeaderSize)
	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "data", string(out[36:40]))
	assert.Equal(t, []byte{0, 0, 0, 0}, out[40:44])
}
