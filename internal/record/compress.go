package record

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// DefaultLevel is the zstd level used for output rounds.
const DefaultLevel = 3

// Compress writes payload to w as a single zstd frame at the given level.
func Compress(w io.Writer, payload []byte, level int) error {
	enc, err := zstd.NewWriter(w,
		zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return fmt.Errorf("zstd encoder: %w", err)
	}
	if _, err := enc.Write(payload); err != nil {
		enc.Close()
		return fmt.Errorf("zstd write: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return nil
}

// Decompress reads a whole zstd stream.
func Decompress(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("zstd read: %w", err)
	}
	return data, nil
}

// ReadAll decompresses and decodes every record in r.
func ReadAll(r io.Reader) ([]Record, error) {
	data, err := Decompress(r)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// DecodeFile loads one round file.
func DecodeFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}
