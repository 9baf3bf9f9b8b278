package mandelbrot

const (
	// MaxIterations is the iteration ceiling of the escape-time kernel.
	MaxIterations = 80
	// MaxNormSquare is the squared magnitude past which an orbit has escaped.
	MaxNormSquare = 4.0

	// Reference output size.
	ImageWidth  = 3840
	ImageHeight = 2160
)

// https://en.wikipedia.org/wiki/Plotting_algorithms_for_the_Mandelbrot_set#Unoptimized_na%C3%AFve_escape_time_algorithm
//
// EscapeTime iterates z = z² + c from z = 0 and returns the first iteration
// (counted from 1) at which |z|² exceeds MaxNormSquare. Points that have not
// escaped after MaxIterations-1 iterations are taken to be in the set and
// return 0.
func EscapeTime(c Complex) int {
	var z Complex
	for i := 1; i < MaxIterations; i++ {
		z = z.Mul(z).Add(c)
		if z.NormSquare() > MaxNormSquare {
			return i
		}
	}
	return 0
}

// Rescale maps pixel index along an axis of axisLength pixels onto [lower, upper).
func Rescale(axisLength int, lower float64, upper float64, index int) float64 {
	return (upper-lower)/float64(axisLength)*float64(index) + lower
}
