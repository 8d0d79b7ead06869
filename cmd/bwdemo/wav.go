package main

import (
	"encoding/binary"
	"math"
	"os"
)

// writeWAVFloat32 writes interleaved stereo float32 samples as an
// IEEE-float WAV file. No third-party WAV encoder appears anywhere in
// the reference pack, so this sticks to encoding/binary directly: it is
// a ~40-line fixed-format header, not a parsing problem worth pulling a
// dependency in for.
func writeWAVFloat32(path string, sampleRate int, channels int, interleaved []float32) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const bitsPerSample = 32
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8
	dataSize := uint32(len(interleaved) * 4)

	hdr := make([]byte, 0, 58)
	hdr = append(hdr, "RIFF"...)
	hdr = binary.LittleEndian.AppendUint32(hdr, 50+dataSize)
	hdr = append(hdr, "WAVE"...)

	hdr = append(hdr, "fmt "...)
	hdr = binary.LittleEndian.AppendUint32(hdr, 18)
	hdr = binary.LittleEndian.AppendUint16(hdr, 3) // WAVE_FORMAT_IEEE_FLOAT
	hdr = binary.LittleEndian.AppendUint16(hdr, uint16(channels))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(sampleRate))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(byteRate))
	hdr = binary.LittleEndian.AppendUint16(hdr, uint16(blockAlign))
	hdr = binary.LittleEndian.AppendUint16(hdr, bitsPerSample)
	hdr = binary.LittleEndian.AppendUint16(hdr, 0) // cbSize

	hdr = append(hdr, "fact"...)
	hdr = binary.LittleEndian.AppendUint32(hdr, 4)
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(len(interleaved)/channels))

	hdr = append(hdr, "data"...)
	hdr = binary.LittleEndian.AppendUint32(hdr, dataSize)

	if _, err := f.Write(hdr); err != nil {
		return err
	}

	buf := make([]byte, len(interleaved)*4)
	for i, v := range interleaved {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	_, err = f.Write(buf)
	return err
}
