// Package nnue implements incremental NNUE evaluation: a single
// hidden layer fed by side-relative feature accumulators, activated
// with SCReLU, and projected through a material-bucketed output head.
package nnue

const (
	NumPieceTypes = 12
	NumSquares    = 64

	// InputSize is the feature-vector width per perspective: one
	// feature per (piece index, square) pair.
	InputSize = NumPieceTypes * NumSquares

	// HLSize is the hidden layer width per perspective.
	HLSize = 256

	// NumBuckets selects an output head by remaining material.
	NumBuckets = 8

	// QA/QB are the quantization scales for accumulator weights and
	// output weights respectively; both int16 fixed-point with this
	// many fractional bits implied by the weight file's scaling.
	QA = 255
	QB = 64

	outputScale = 400
)

// screlu is "squared clipped relu": clamp(x, 0, 1)^2, computed in the
// quantized domain by clamping to [0, QA] before squaring.
func screlu(x int16) int32 {
	v := int32(x)
	if v < 0 {
		v = 0
	} else if v > QA {
		v = QA
	}
	return v * v
}

// bucketFor maps a material popcount (0..32) to an output bucket,
// more material giving a higher bucket, and clips to the last bucket
// if the count would run past it.
func bucketFor(materialPopCount int) int {
	b := (materialPopCount * NumBuckets) / 33
	if b >= NumBuckets {
		b = NumBuckets - 1
	}
	return b
}
