// Package analysis measures recorded circuit traces.
//
//   - [PowerSpectrum] and [DominantFrequency]: FFT of a uniformly sampled trace
//   - [UpwardCrossings] and [MeasuredPeriod]: interpolated level crossings
//   - [NewPhasePortrait]: two traces against each other, e.g. charge and current
//
// The analytic angular frequency of a circuit can be checked against a run:
//
//	f, _ := analysis.DominantFrequency(result.Voltage, cfg.Dt)
//	omega := 2 * math.Pi * f
package analysis
