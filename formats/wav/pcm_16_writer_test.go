// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

type failWriter struct{ after int }

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errWrite
	}
	w.after--
	return len(p), nil
}

func TestWriteWAV16_CorrectHeader(t *testing.T) {
	t.Parallel()

	samples := []int16{100, 200, 300, 400}
	buf := new(bytes.Buffer)

	if err := WriteWAV16(buf, 44100, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	h, err := ParseHeader(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h != PCM16Header(44100, 8) {
		t.Errorf("header = %+v, want %+v", h, PCM16Header(44100, 8))
	}
}

func TestWriteWAV16_EmptySamples(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 8000, nil); err != nil {
		t.Fatalf("WriteWAV16() error = %v, want nil", err)
	}

	if buf.Len() != HeaderSize {
		t.Errorf("WAV file size = %d, want %d (header only)", buf.Len(), HeaderSize)
	}
}

func TestWriteWAV16_SampleData(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 20000) // spans several 8K chunks
	for i := range samples {
		samples[i] = int16(i*7 - 30000)
	}
	buf := new(bytes.Buffer)

	if err := WriteWAV16(buf, 8000, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()
	if len(data) != HeaderSize+2*len(samples) {
		t.Fatalf("len = %d, want %d", len(data), HeaderSize+2*len(samples))
	}
	for i, want := range samples {
		got := int16(binary.LittleEndian.Uint16(data[HeaderSize+2*i:]))
		if got != want {
			t.Fatalf("sample[%d] = %d, want %d", i, got, want)
		}
	}
}

func TestWriteWAV16_WriteErrors(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(&failWriter{}, 8000, []int16{1}); !errors.Is(err, errWrite) {
		t.Errorf("header write error = %v, want errWrite", err)
	}
	if err := WriteWAV16(&failWriter{after: 1}, 8000, []int16{1}); !errors.Is(err, errWrite) {
		t.Errorf("sample write error = %v, want errWrite", err)
	}
}

func TestWriteIMAADPCM(t *testing.T) {
	t.Parallel()

	payload := []byte{0x01, 0x23, 0x45}
	buf := new(bytes.Buffer)

	if err := WriteIMAADPCM(buf, 16000, payload); err != nil {
		t.Fatalf("WriteIMAADPCM() error = %v", err)
	}

	h, err := ParseHeader(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	if h.AudioFormat != FormatIMAADPCM || h.BitsPerSample != 4 || h.SampleRate != 16000 {
		t.Errorf("header = %+v, want IMA ADPCM 4-bit 16000 Hz", h)
	}
	if h.DataSize != 3 || h.RIFFSize != 39 {
		t.Errorf("data/riff size = %d/%d, want 3/39", h.DataSize, h.RIFFSize)
	}
	if !bytes.Equal(buf.Bytes()[HeaderSize:], payload) {
		t.Error("payload not written after header")
	}
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 16000)
	buf := new(bytes.Buffer)

	b.ReportAllocs()
	for b.Loop() {
		buf.Reset()
		WriteWAV16(buf, 16000, samples)
	}
}

func TestWriters_InvalidSampleRate(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{0, -1, int(maxRate64 + 1)} {
		buf := new(bytes.Buffer)
		if err := WriteWAV16(buf, rate, []int16{1}); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("WriteWAV16(rate %d) error = %v, want ErrInvalidSampleRate", rate, err)
		}
		if err := WriteIMAADPCM(buf, rate, []byte{1}); !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("WriteIMAADPCM(rate %d) error = %v, want ErrInvalidSampleRate", rate, err)
		}
		if buf.Len() != 0 {
			t.Errorf("rate %d: wrote %d bytes before failing", rate, buf.Len())
		}
	}
}
