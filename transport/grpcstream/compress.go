package grpcstream

import (
	"fmt"

	"github.com/golang/snappy"
)

// Compressor applies symmetric compression to frame payload bytes.
type Compressor interface {
	//1.- Name returns the codec identifier advertised in frame metadata.
	Name() string
	//2.- Compress encodes the provided payload into a compressed representation.
	Compress(data []byte) ([]byte, error)
	//3.- Decompress restores the original payload from its compressed form.
	Decompress(data []byte) ([]byte, error)
}

// snappyCompressor wraps golang/snappy's block format.
type snappyCompressor struct{}

// NewSnappyCompressor constructs a Compressor backed by snappy block
// compression, replacing the teacher's gzip compressor (snappy favors
// throughput over ratio, matching the latency budget of a live stream).
func NewSnappyCompressor() Compressor {
	return snappyCompressor{}
}

// Name reports the identifier used for snappy encoded payloads.
func (snappyCompressor) Name() string { return "snappy" }

// Compress encodes data using snappy block compression.
func (snappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

// Decompress decodes snappy-encoded data and returns the raw payload.
func (snappyCompressor) Decompress(data []byte) ([]byte, error) {
	//1.- Guard against nil payloads to simplify caller logic.
	if len(data) == 0 {
		return nil, fmt.Errorf("snappy decompress: empty payload")
	}
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy decode: %w", err)
	}
	return out, nil
}
