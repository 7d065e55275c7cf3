// SPDX-License-Identifier: EPL-2.0

package adpcm

const (
	// MinStepIndex and MaxStepIndex bound the quantizer step index.
	MinStepIndex = 0
	MaxStepIndex = len(stepTable) - 1
)

// IMA ADPCM quantizer step sizes.
var stepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14,
	16, 17, 19, 21, 23, 25, 28, 31,
	34, 37, 41, 45, 50, 55, 60, 66,
	73, 80, 88, 97, 107, 118, 130, 143,
	157, 173, 190, 209, 230, 253, 279, 307,
	337, 371, 408, 449, 494, 544, 598, 658,
	724, 796, 876, 963, 1060, 1166, 1282, 1411,
	1552, 1707, 1878, 2066, 2272, 2499, 2749, 3024,
	3327, 3660, 4026, 4428, 4871, 5358, 5894, 6484,
	7132, 7845, 8630, 9493, 10442, 11487, 12635, 13899,
	15289, 16818, 18500, 20350, 22385, 24623, 27086, 29794,
	32767,
}

// Step index delta per 4-bit code. The sign bit does not change the delta.
var indexTable = [16]int8{
	-1, -1, -1, -1, 2, 4, 6, 8,
	-1, -1, -1, -1, 2, 4, 6, 8,
}

// StepSize returns the quantizer step for index i, clamping i to
// [MinStepIndex, MaxStepIndex].
func StepSize(i int) int {
	return int(stepTable[clampIndex(i)])
}

// IndexAdjust returns the step index delta for the low 4 bits of code.
func IndexAdjust(code uint8) int {
	return int(indexTable[code&0x0F])
}

// StepTable returns a copy of the quantizer step table.
func StepTable() [89]int32 { return stepTable }

// IndexTable returns a copy of the index adjustment table.
func IndexTable() [16]int8 { return indexTable }

func clampIndex(i int) int {
	if i < MinStepIndex {
		return MinStepIndex
	}
	if i > MaxStepIndex {
		return MaxStepIndex
	}
	return i
}

func clampInt16(x int32) int16 {
	if x > 32767 {
		return 32767
	}
	if x < -32768 {
		return -32768
	}
	return int16(x)
}
