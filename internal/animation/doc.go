// Package animation interpolates numeric records over time.
//
// A Manager drives one run at a time: it samples the elapsed time on each
// frame supplied by a Scheduler, eases the clamped progress, and reports
// the interpolated record through OnUpdate. When progress reaches 1 the
// record is snapped exactly to Options.To before OnComplete fires.
//
// Scheduling is injected. FrameScheduler ticks on its own goroutine for
// hosts that want wall-clock animation; ManualScheduler advances only when
// told to, which makes runs deterministic under test:
//
//	s := animation.NewManualScheduler(time.Now())
//	m := animation.NewManager[string, float64](s)
//	m.Animate(animation.Options[string, float64]{
//	    From:     map[string]float64{"rotation": 0},
//	    To:       map[string]float64{"rotation": 90},
//	    OnUpdate: func(v map[string]float64) { fmt.Println(v["rotation"]) },
//	})
//	s.Run(16*time.Millisecond, 100)
package animation
