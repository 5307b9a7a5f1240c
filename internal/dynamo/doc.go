// Package dynamo provides the shared primitives of the LC circuit simulator.
//
// The package defines the small vocabulary every other package speaks:
//
//   - [Signal]: a pure function of simulated time, sampled for plotting
//   - [SignalFunc]: adapter turning an ordinary func into a [Signal]
//   - [Frame]: everything an external renderer needs for one tick
//   - [Config]: fixed-step run configuration
//
// # Example
//
//	c, _ := circuit.New(params)
//	s, _ := series.New(dynamo.SignalFunc(c.Voltage), 200, c.Period())
//	samples := s.Sample(t)
//
// # Thread Safety
//
// Nothing here is synchronized. A circuit has a single writer; package sim
// provides a run controller that serializes ticks and reads.
package dynamo
