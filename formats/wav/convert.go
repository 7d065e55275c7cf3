// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
)

// DefaultChunkSize is the read size used by Convert when none is given.
const DefaultChunkSize = 4096

// Stats counts the bytes a conversion consumed and produced.
type Stats struct {
	InputBytes   int64
	PayloadBytes int64
	OutputBytes  int64
}

// Converter is an io.WriteCloser that transforms everything written to it
// and forwards the result to the underlying writer.
//
// Close reports a truncated header. When the underlying writer is also an
// io.WriteSeeker, Close patches the RIFF and data sizes to their final values.
// Once a write to the underlying writer fails, every later Write and Close
// returns that error.
type Converter struct {
	w     io.Writer
	t     *Transform
	stats Stats
	err   error
}

// NewConverter returns a Converter writing to w.
func NewConverter(w io.Writer, opts ...TransformOption) *Converter {
	return &Converter{
		w: w,
		t: NewTransform(opts...),
	}
}

// Transform exposes the underlying transform.
func (c *Converter) Transform() *Transform { return c.t }

// Stats returns the byte counts so far.
func (c *Converter) Stats() Stats {
	s := c.stats
	s.PayloadBytes = c.t.PayloadBytes()
	return s
}

func (c *Converter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}

	out, err := c.t.Push(p)
	if err != nil {
		return 0, err
	}
	c.stats.InputBytes += int64(len(p))

	if len(out) == 0 {
		return len(p), nil
	}

	n, err := c.w.Write(out)
	c.stats.OutputBytes += int64(n)
	if err != nil {
		c.err = fmt.Errorf("%w", err)
		return 0, c.err
	}

	return len(p), nil
}

func (c *Converter) Close() error {
	if c.err != nil {
		return c.err
	}
	if err := c.t.Finish(); err != nil {
		return err
	}

	ws, ok := c.w.(io.WriteSeeker)
	if !ok {
		return nil
	}

	return FinalizeSizes(ws, 4*c.t.PayloadBytes())
}

// FinalizeSizes rewrites the RIFF and data sizes of a header written at the
// start of ws for dataLen bytes of samples, then seeks back to the end.
func FinalizeSizes(ws io.WriteSeeker, dataLen int64) error {
	if dataLen < 0 || dataLen > int64(UnknownSize)-(HeaderSize-8) {
		return ErrDataTooLarge
	}

	var b [4]byte

	binary.LittleEndian.PutUint32(b[:], uint32(dataLen)+HeaderSize-8)
	if err := writeAt(ws, 4, b[:]); err != nil {
		return err
	}

	binary.LittleEndian.PutUint32(b[:], uint32(dataLen))
	if err := writeAt(ws, 40, b[:]); err != nil {
		return err
	}

	if _, err := ws.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func writeAt(ws io.WriteSeeker, off int64, b []byte) error {
	if _, err := ws.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("%w", err)
	}
	if _, err := ws.Write(b); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Convert reads src in chunks of chunkSize bytes, transforms it and writes
// the PCM WAV to dst. ctx is checked between chunks; on cancellation the
// output written so far is incomplete and should be discarded.
func Convert(ctx context.Context, dst io.Writer, src io.Reader, chunkSize int, opts ...TransformOption) (Stats, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	c := NewConverter(dst, opts...)
	buf := make([]byte, chunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return c.Stats(), fmt.Errorf("%w", err)
		}

		n, err := src.Read(buf)
		if n > 0 {
			if _, werr := c.Write(buf[:n]); werr != nil {
				return c.Stats(), werr
			}
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return c.Stats(), fmt.Errorf("reading input: %w", err)
		}
	}

	if err := c.Close(); err != nil {
		return c.Stats(), err
	}

	return c.Stats(), nil
}
