// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/adpcmpbx/adpcm"
	"github.com/ik5/adpcmpbx/internal/adpcmtest"
)

func TestConverter_NonSeekableKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	payload := adpcmtest.RandomPayload(2, 100)
	buf := new(bytes.Buffer)

	c := NewConverter(buf)
	if _, err := c.Write(adpcmtest.WAV(payload)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	out := buf.Bytes()
	if got := binary.LittleEndian.Uint32(out[40:44]); got != UnknownSize {
		t.Errorf("data size = %#x, want placeholder %#x", got, UnknownSize)
	}

	s := c.Stats()
	if s.InputBytes != int64(HeaderSize+len(payload)) || s.PayloadBytes != 100 || s.OutputBytes != int64(HeaderSize+400) {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestConverter_FilePatchedAndReadable(t *testing.T) {
	t.Parallel()

	payload := adpcmtest.SinePayload(3200, 440, 16000)
	path := filepath.Join(t.TempDir(), "out_pcm.wav")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	c := NewConverter(f)
	for _, chunk := range adpcmtest.Split(adpcmtest.WAV(payload), 5, 333) {
		if _, err := c.Write(chunk); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	h, err := ParseHeader(data)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}
	wantData := uint32(4 * len(payload))
	if h.DataSize != wantData || h.RIFFSize != wantData+36 {
		t.Errorf("data/riff size = %d/%d, want %d/%d", h.DataSize, h.RIFFSize, wantData, wantData+36)
	}
	if len(data) != HeaderSize+int(wantData) {
		t.Errorf("file len = %d, want %d", len(data), HeaderSize+int(wantData))
	}

	// An independent WAV reader must see the same samples.
	r, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	dec := gowav.NewDecoder(r)
	var pcm *goaudio.IntBuffer
	pcm, err = dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if pcm.Format.SampleRate != 16000 || pcm.Format.NumChannels != 1 {
		t.Errorf("format = %+v, want 16000 Hz mono", pcm.Format)
	}

	want := adpcm.NewDecoder().DecodeBlock(payload)
	if len(pcm.Data) != len(want) {
		t.Fatalf("decoded samples = %d, want %d", len(pcm.Data), len(want))
	}
	for i := range want {
		if pcm.Data[i] != int(want[i]) {
			t.Fatalf("sample %d = %d, want %d", i, pcm.Data[i], want[i])
		}
	}
}

func TestConverter_CloseTruncated(t *testing.T) {
	t.Parallel()

	c := NewConverter(io.Discard)
	if _, err := c.Write([]byte("RIFF")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := c.Close(); !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("Close() error = %v, want ErrTruncatedHeader", err)
	}
}

func TestConverter_WriteError(t *testing.T) {
	t.Parallel()

	c := NewConverter(&failWriter{})
	if _, err := c.Write(adpcmtest.WAV([]byte{1})); !errors.Is(err, errWrite) {
		t.Errorf("Write() error = %v, want errWrite", err)
	}
}

func TestConverter_WriteErrorIsSticky(t *testing.T) {
	t.Parallel()

	w := &failWriter{after: 1}
	c := NewConverter(w)

	if _, err := c.Write(adpcmtest.WAV([]byte{1})); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	if _, err := c.Write([]byte{2, 3}); !errors.Is(err, errWrite) {
		t.Fatalf("second Write() error = %v, want errWrite", err)
	}

	// The decoder already consumed the failed chunk, so a retry must not
	// produce output with a gap in it.
	w.after = 100
	if n, err := c.Write([]byte{4}); !errors.Is(err, errWrite) || n != 0 {
		t.Errorf("retried Write() = %d, %v, want 0, errWrite", n, err)
	}
	if err := c.Close(); !errors.Is(err, errWrite) {
		t.Errorf("Close() error = %v, want errWrite", err)
	}
}

func TestConvert_ChunkedReaderMatchesWhole(t *testing.T) {
	t.Parallel()

	data := adpcmtest.WAV(adpcmtest.RandomPayload(9, 3000))

	whole := new(bytes.Buffer)
	if _, err := Convert(context.Background(), whole, bytes.NewReader(data), len(data)); err != nil {
		t.Fatalf("Convert(whole) error = %v", err)
	}

	for _, chunkSize := range []int{0, 1, 3, 44, 45, 1000} {
		out := new(bytes.Buffer)
		src := adpcmtest.NewChunkReader(adpcmtest.Split(data, uint64(chunkSize), 97))

		stats, err := Convert(context.Background(), out, src, chunkSize)
		if err != nil {
			t.Fatalf("Convert(chunk %d) error = %v", chunkSize, err)
		}
		if !bytes.Equal(out.Bytes(), whole.Bytes()) {
			t.Errorf("Convert(chunk %d) output differs", chunkSize)
		}
		if stats.PayloadBytes != 3000 || stats.OutputBytes != HeaderSize+12000 {
			t.Errorf("Convert(chunk %d) stats = %+v", chunkSize, stats)
		}
	}
}

func TestConvert_Truncated(t *testing.T) {
	t.Parallel()

	_, err := Convert(context.Background(), io.Discard, bytes.NewReader([]byte("RIFF1234WAVE")), 0)
	if !errors.Is(err, ErrTruncatedHeader) {
		t.Errorf("Convert() error = %v, want ErrTruncatedHeader", err)
	}
}

func TestConvert_ReadError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("connection reset")
	src := &adpcmtest.ErrReader{Prefix: adpcmtest.WAV([]byte{1, 2}), Err: errBoom}

	stats, err := Convert(context.Background(), io.Discard, src, 16)
	if !errors.Is(err, errBoom) {
		t.Fatalf("Convert() error = %v, want errBoom", err)
	}
	if stats.PayloadBytes != 2 {
		t.Errorf("PayloadBytes = %d, want 2", stats.PayloadBytes)
	}
}

func TestConvert_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Convert(ctx, io.Discard, bytes.NewReader(adpcmtest.WAV(nil)), 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_Options(t *testing.T) {
	t.Parallel()

	bad := adpcmtest.WAV([]byte{1})
	copy(bad[8:12], "AVI ")

	_, err := Convert(context.Background(), io.Discard, bytes.NewReader(bad), 0, WithHeaderCheck())
	if !errors.Is(err, ErrNotWavFile) {
		t.Errorf("Convert(WithHeaderCheck) error = %v, want ErrNotWavFile", err)
	}

	out := new(bytes.Buffer)
	if _, err := Convert(context.Background(), out, bytes.NewReader(bad), 0, WithSampleRate(8000)); err != nil {
		t.Fatalf("Convert(WithSampleRate) error = %v", err)
	}
	if rate := binary.LittleEndian.Uint32(out.Bytes()[24:28]); rate != 8000 {
		t.Errorf("sample rate = %d, want 8000", rate)
	}
}

func TestFinalizeSizes_TooLarge(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "x.wav"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := FinalizeSizes(f, int64(UnknownSize)); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("FinalizeSizes() error = %v, want ErrDataTooLarge", err)
	}
	if err := FinalizeSizes(f, -1); !errors.Is(err, ErrDataTooLarge) {
		t.Errorf("FinalizeSizes(-1) error = %v, want ErrDataTooLarge", err)
	}
}
