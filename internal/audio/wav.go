// Package audio converts raw generation samples into WAV byte streams.
package audio

// WAV format constants.
const (
	// HeaderSize is the size of a standard WAV file header in bytes.
	HeaderSize = 44

	// FormatPCM is the audio format code for uncompressed PCM.
	FormatPCM = 1

	// BitsPerSample is the fixed output bit depth (16-bit signed).
	BitsPerSample = 16
)

// WrapPCM adds a canonical RIFF/WAVE header to raw PCM data.
func WrapPCM(pcm []byte, sampleRate, channels int) []byte {
	dataSize := len(pcm)
	byteRate := sampleRate * channels * BitsPerSample / 8
	blockAlign := channels * BitsPerSample / 8

	header := make([]byte, HeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	putLE32(header[4:8], uint32(36+dataSize))
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	putLE32(header[16:20], 16) // subchunk size
	putLE16(header[20:22], FormatPCM)
	putLE16(header[22:24], uint16(channels))
	putLE32(header[24:28], uint32(sampleRate))
	putLE32(header[28:32], uint32(byteRate))
	putLE16(header[32:34], uint16(blockAlign))
	putLE16(header[34:36], uint16(BitsPerSample))

	// data subchunk
	copy(header[36:40], "data")
	putLE32(header[40:44], uint32(dataSize))

	return append(header, pcm...)
}

// PCM16FromFloats converts samples in [-1, 1] to little-endian 16-bit PCM.
// Out-of-range samples are clamped before truncation.
func PCM16FromFloats(samples []float32) []byte {
	pcm := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		putLE16(pcm[i*2:i*2+2], uint16(v))
	}
	return pcm
}

// Silence returns duration seconds of zero PCM frames. A duration of zero
// or less yields an empty buffer.
func Silence(duration float64, sampleRate, channels int) []byte {
	frames := int(duration * float64(sampleRate))
	if frames < 0 {
		frames = 0
	}
	return make([]byte, frames*channels*2)
}

// SilenceWAV returns duration seconds of silence as a framed WAV buffer.
func SilenceWAV(duration float64, sampleRate, channels int) []byte {
	return WrapPCM(Silence(duration, sampleRate, channels), sampleRate, channels)
}

func putLE16(b []byte, v uint16) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
