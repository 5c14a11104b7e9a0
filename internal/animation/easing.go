package animation

// EasingFunc maps linear progress t in [0,1] to eased progress. The result
// may leave [0,1] for overshooting curves; the built-ins do not.
type EasingFunc func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// EaseIn accelerates from zero velocity.
func EaseIn(t float64) float64 { return t * t }

// EaseOut decelerates to zero velocity.
func EaseOut(t float64) float64 { return t * (2 - t) }

// EaseInOut accelerates until halfway, then decelerates.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

var easings = map[string]EasingFunc{
	"linear":    Linear,
	"easeIn":    EaseIn,
	"easeOut":   EaseOut,
	"easeInOut": EaseInOut,
}

// LookupEasing returns the built-in curve with the given name.
func LookupEasing(name string) (EasingFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

// EasingNames lists the built-in curve names.
func EasingNames() []string {
	return []string{"linear", "easeIn", "easeOut", "easeInOut"}
}
