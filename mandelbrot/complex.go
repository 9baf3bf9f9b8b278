package mandelbrot

import "fmt"

// Complex is the minimal complex number the escape-time kernel iterates on.
type Complex struct {
	Real      float64
	Imaginary float64
}

func (c Complex) Add(o Complex) Complex {
	return Complex{Real: c.Real + o.Real, Imaginary: c.Imaginary + o.Imaginary}
}

// Scale multiplies both parts of c by a real factor.
func (c Complex) Scale(factor float64) Complex {
	return Complex{Real: factor * c.Real, Imaginary: factor * c.Imaginary}
}

func (c Complex) Mul(o Complex) Complex {
	return Complex{
		Real:      c.Real*o.Real - c.Imaginary*o.Imaginary,
		Imaginary: c.Real*o.Imaginary + c.Imaginary*o.Real,
	}
}

func (c Complex) Conjugate() Complex {
	return Complex{Real: c.Real, Imaginary: -c.Imaginary}
}

// NormSquare is |c|², the real part of c times its conjugate.
func (c Complex) NormSquare() float64 {
	return c.Mul(c.Conjugate()).Real
}

func (c Complex) String() string {
	return fmt.Sprintf("%g%+gi", c.Real, c.Imaginary)
}
