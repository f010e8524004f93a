package parser

import (
	"encoding/binary"
)

// dataSentinel is the byte that begins every block of the data record.
const dataSentinel = 0xAA

// parseDataBlock parses one column of elevation samples from the data
// record.
//
// Block layout:
//
//	sentinel + block count  (4 bytes, 0xAA combined with a big-endian count)
//	longitude/latitude count of the block start (4 bytes)
//	samples                 (2 bytes each, big-endian, signed magnitude)
//	checksum                (4 bytes, big-endian signed)
//
// The checksum is verified first when enabled: it is the unsigned byte-sum
// of everything before the trailing 4 bytes. On mismatch the error reports
// the block's self-reported index, recovered as
// (0xAA<<24) - bigEndianUint32(block[0:4]).
//
// The returned samples are still in signed-magnitude form; callers convert
// with convertSignedMagnitude. column identifies the block for error
// reporting only.
func parseDataBlock(block []byte, column int, verifyChecksum bool) ([]int16, error) {
	if len(block) < 12 {
		return nil, &ErrTruncatedData{Expected: 12, Actual: len(block)}
	}
	if verifyChecksum {
		expected := int32(binary.BigEndian.Uint32(block[len(block)-4:]))
		var sum uint32
		for _, b := range block[:len(block)-4] {
			sum += uint32(b)
		}
		if int64(sum) != int64(expected) {
			blockIndex := int(int64(dataSentinel)<<24 - int64(binary.BigEndian.Uint32(block[:4])))
			return nil, &ErrChecksumMismatch{Block: blockIndex, Expected: expected, Computed: sum}
		}
	}
	if block[0] != dataSentinel {
		return nil, &ErrBadBlockSentinel{Column: column, Found: block[0]}
	}

	payload := block[8 : len(block)-4]
	samples := make([]int16, len(payload)/2)
	for i := range samples {
		samples[i] = int16(binary.BigEndian.Uint16(payload[2*i : 2*i+2]))
	}
	return samples, nil
}

// ConvertSignedMagnitude converts 16-bit samples between signed-magnitude
// and two's-complement representation, returning a new slice. The
// conversion is its own inverse.
func ConvertSignedMagnitude(samples []int16) []int16 {
	converted := make([]int16, len(samples))
	copy(converted, samples)
	convertSignedMagnitude(converted)
	return converted
}

// convertSignedMagnitude converts samples in place. Only call this on a
// buffer the caller exclusively owns.
func convertSignedMagnitude(samples []int16) {
	for i, sample := range samples {
		if sample < 0 {
			samples[i] = int16(0x8000 - int32(sample))
		}
	}
}
