package storage

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/san-kum/lcsim/internal/circuit"
)

// Fingerprint hashes every field of p, so runs of identical circuits can be
// found without comparing floats field by field.
func Fingerprint(p circuit.Params) string {
	h := xxhash.New()
	var buf [8]byte
	for _, v := range []float64{
		p.Capacitance,
		p.Inductance,
		p.PeakVoltage,
		float64(p.ChargeCount),
		p.ChargeValue,
		p.LoopOrigin.X,
		p.LoopOrigin.Y,
		p.LoopSize.X,
		p.LoopSize.Y,
	} {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
