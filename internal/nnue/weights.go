package nnue

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// MagicNumber and Version identify the binary weight blob format:
// accumulator weights (InputSize x HLSize), accumulator biases
// (HLSize), output weights (NumBuckets x 2*HLSize), and an output
// bias per bucket, all little-endian int16/int32.
const (
	MagicNumber uint32 = 0x4E4E5545 // "NNUE"
	Version     uint32 = 1
)

type fileHeader struct {
	Magic      uint32
	Version    uint32
	InputSize  uint32
	HLSize     uint32
	NumBuckets uint32
}

// LoadWeights reads a network from path. A missing or unreadable
// weights file is a fatal startup condition for the engine core.
func LoadWeights(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nnue: opening weights file: %w", err)
	}
	defer f.Close()
	return LoadWeightsFromReader(f)
}

func LoadWeightsFromReader(r io.Reader) (*Network, error) {
	var hdr fileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("nnue: reading header: %w", err)
	}
	if hdr.Magic != MagicNumber {
		return nil, fmt.Errorf("nnue: bad magic number %x", hdr.Magic)
	}
	if int(hdr.InputSize) != InputSize || int(hdr.HLSize) != HLSize || int(hdr.NumBuckets) != NumBuckets {
		return nil, fmt.Errorf("nnue: weight shape mismatch: got input=%d hl=%d buckets=%d, want input=%d hl=%d buckets=%d",
			hdr.InputSize, hdr.HLSize, hdr.NumBuckets, InputSize, HLSize, NumBuckets)
	}

	net := &Network{}
	if err := binary.Read(r, binary.LittleEndian, &net.L1Weights); err != nil {
		return nil, fmt.Errorf("nnue: reading accumulator weights: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &net.L1Bias); err != nil {
		return nil, fmt.Errorf("nnue: reading accumulator biases: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &net.OutputWeights); err != nil {
		return nil, fmt.Errorf("nnue: reading output weights: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &net.OutputBias); err != nil {
		return nil, fmt.Errorf("nnue: reading output bias: %w", err)
	}
	return net, nil
}

// SaveWeights writes a network in the same format LoadWeights reads,
// used by tooling that trains or converts weights outside this core.
func SaveWeights(path string, net *Network) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("nnue: creating weights file: %w", err)
	}
	defer f.Close()

	hdr := fileHeader{
		Magic:      MagicNumber,
		Version:    Version,
		InputSize:  InputSize,
		HLSize:     HLSize,
		NumBuckets: NumBuckets,
	}
	if err := binary.Write(f, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("nnue: writing header: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, net.L1Weights); err != nil {
		return fmt.Errorf("nnue: writing accumulator weights: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, net.L1Bias); err != nil {
		return fmt.Errorf("nnue: writing accumulator biases: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, net.OutputWeights); err != nil {
		return fmt.Errorf("nnue: writing output weights: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, net.OutputBias); err != nil {
		return fmt.Errorf("nnue: writing output bias: %w", err)
	}
	return nil
}
