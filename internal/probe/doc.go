// Package probe runs correlation probes: one reference sequence against a
// pool of candidates, exactly one of which is secretly linked to it.
//
// The Engine owns the hidden linked-candidate index. It is set only through
// ReselectLinked and never appears in a Report; collaborators that need it
// for debugging receive it through Config.OnReselect or the decision log.
//
// Usage:
//
//	eng := probe.NewEngine(random.NewSource(0), probe.DefaultConfig())
//	if err := eng.ReselectLinked(12); err != nil {
//	    return err
//	}
//	report, err := eng.RunProbe(200, 12, 0.15)
//
// An Engine is safe for concurrent use, but probes are serialized: a probe
// is a short synchronous computation with no I/O.
package probe
