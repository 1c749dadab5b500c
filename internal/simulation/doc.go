// Package simulation provides a statistical harness for validating the
// probe engine over many repetitions.
//
// The simulation exercises the real Engine, sequence generator and tiering
// pipeline with no mocks. Each scenario runs a seeded engine for a fixed
// number of repetitions and captures the hidden linked candidate through the
// engine's debugging hook, so results can be compared against the
// theoretical expectation 1-2p without the report ever revealing it.
//
// Usage:
//
//	func TestLowNoiseIsDetected(t *testing.T) {
//	    r := simulation.NewRunner(probe.DefaultConfig())
//	    result, err := r.Run(context.Background(), simulation.Scenario{
//	        Name:        "low-noise",
//	        Params:      models.Params{Trials: 500, Candidates: 12, Noise: 0.1},
//	        Repetitions: 40,
//	        Seed:        1,
//	    })
//	    require.NoError(t, err)
//	    simulation.AssertMeanNear(t, result, 0.05)
//	    simulation.AssertDetectionRateAtLeast(t, result, 0.95)
//	}
package simulation
