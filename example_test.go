// SPDX-License-Identifier: EPL-2.0

package adpcmpbx_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/adpcmpbx"
	"github.com/ik5/adpcmpbx/formats/wav"
)

// Example_convertFile converts a recorder upload on disk.
func Example_convertFile() {
	dir, err := os.MkdirTemp("", "adpcmpbx")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "rec.wav")
	out := filepath.Join(dir, "rec_pcm.wav")

	f, _ := os.Create(in)
	wav.WriteIMAADPCM(f, 16000, make([]byte, 8000)) // 16000 samples
	f.Close()

	stats, err := adpcmpbx.ConvertFile(context.Background(), in, out)
	if err != nil {
		fmt.Println(err)
		return
	}

	pcm, _ := os.Open(out)
	defer pcm.Close()
	info, _ := wav.Probe(pcm)

	fmt.Printf("Decoded %d bytes into %d\n", stats.PayloadBytes, info.DataSize)
	fmt.Printf("Duration: %v at %d Hz\n", info.Duration, info.Format.SampleRate)
	// Output:
	// Decoded 8000 bytes into 32000
	// Duration: 1s at 16000 Hz
}
