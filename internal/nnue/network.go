package nnue

// Network holds the quantized weights of the single-hidden-layer
// network: a shared feature-transformer layer (L1) feeding a
// per-material-bucket output head.
type Network struct {
	L1Weights [InputSize][HLSize]int16
	L1Bias    [HLSize]int16

	OutputWeights [NumBuckets][2 * HLSize]int16
	OutputBias    [NumBuckets]int32
}

// Forward concatenates the side-to-move's perspective vector first,
// then the other side's, runs SCReLU, and projects through the
// chosen bucket's output weights.
func (n *Network) Forward(own, other *[HLSize]int16, bucket int) int {
	var sum int64 = int64(n.OutputBias[bucket])
	w := n.OutputWeights[bucket]
	for i := 0; i < HLSize; i++ {
		sum += int64(screlu(own[i])) * int64(w[i])
	}
	for i := 0; i < HLSize; i++ {
		sum += int64(screlu(other[i])) * int64(w[HLSize+i])
	}
	return int(sum * outputScale / (int64(QA) * int64(QA) * int64(QB)))
}

// InitRandom fills the network with small pseudo-random weights for
// tests that need a network but don't care about playing strength.
func (n *Network) InitRandom(seed uint64) {
	state := seed
	next := func() int16 {
		state = state*6364136223846793005 + 1442695040888963407
		return int16((state >> 48) % 64)
	}
	for i := range n.L1Weights {
		for j := range n.L1Weights[i] {
			n.L1Weights[i][j] = next()
		}
	}
	for i := range n.L1Bias {
		n.L1Bias[i] = next()
	}
	for b := 0; b < NumBuckets; b++ {
		for i := range n.OutputWeights[b] {
			n.OutputWeights[b][i] = next()
		}
		n.OutputBias[b] = int32(next())
	}
}
