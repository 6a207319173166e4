// Package record holds the fixed-width training sample and its wire codec.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/attgen/internal/attitude"
)

// Size is the encoded length of one Record: seven float32 values.
const Size = 7 * 4

var ErrTruncated = errors.New("record: buffer length is not a multiple of record size")

// Record is one converged scenario. AngVel is the starting spin in the car's
// own frame, Target the goal angles relative to the starting orientation and
// Time the simulated seconds until convergence.
type Record struct {
	AngVel mgl32.Vec3
	Target attitude.Angle
	Time   float32
}

func (r Record) fields() [7]float32 {
	return [7]float32{
		r.AngVel.X(), r.AngVel.Y(), r.AngVel.Z(),
		r.Target.Pitch, r.Target.Yaw, r.Target.Roll,
		r.Time,
	}
}

// AppendRecord appends the little-endian encoding of r to b.
func AppendRecord(b []byte, r Record) []byte {
	for _, v := range r.fields() {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
	}
	return b
}

// Encode concatenates records with no header or padding.
func Encode(records []Record) []byte {
	return EncodeTo(make([]byte, 0, len(records)*Size), records)
}

// EncodeTo appends all records to dst.
func EncodeTo(dst []byte, records []Record) []byte {
	for _, r := range records {
		dst = AppendRecord(dst, r)
	}
	return dst
}

func decodeOne(b []byte) Record {
	var f [7]float32
	for i := range f {
		f[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return Record{
		AngVel: mgl32.Vec3{f[0], f[1], f[2]},
		Target: attitude.Angle{Pitch: f[3], Yaw: f[4], Roll: f[5]},
		Time:   f[6],
	}
}

// Decode splits an uncompressed buffer back into records.
func Decode(b []byte) ([]Record, error) {
	if len(b)%Size != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(b))
	}
	out := make([]Record, 0, len(b)/Size)
	for off := 0; off < len(b); off += Size {
		out = append(out, decodeOne(b[off:off+Size]))
	}
	return out, nil
}
