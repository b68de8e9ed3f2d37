// Package solver provides the scalar root finders shared by the
// quasi-Fermi and surface-charge solves: Newton iteration when an analytic
// derivative exists, secant with a bisection fallback when it does not.
package solver

import (
	"errors"
	"fmt"
	"math"
)

// ErrConvergence is returned when the iteration budget runs out before the
// residual and step tolerances are met.
var ErrConvergence = errors.New("convergence error")

// Func evaluates the residual at x.
type Func func(x float64) float64

// Settings bounds an iteration. Zero values fall back to the defaults
// below.
type Settings struct {
	MaxIter int
	AbsTol  float64
	RelTol  float64

	// MaxStep caps the magnitude of a single Newton update. Zero means
	// uncapped. Exponential residuals need this: an early iterate on the
	// flat side of the curve would otherwise fling the solution far past
	// the root.
	MaxStep float64
}

func DefaultSettings() Settings {
	return Settings{
		MaxIter: 100,
		AbsTol:  1e-12,
		RelTol:  1e-6,
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.MaxIter <= 0 {
		s.MaxIter = def.MaxIter
	}
	if s.AbsTol <= 0 {
		s.AbsTol = def.AbsTol
	}
	if s.RelTol <= 0 {
		s.RelTol = def.RelTol
	}
	return s
}

// Converged is the step test used across the solvers: the update is small
// against reltol*|x| + abstol.
func (s Settings) Converged(old, new float64) bool {
	diff := math.Abs(new - old)
	return diff <= s.RelTol*math.Max(math.Abs(new), math.Abs(old))+s.AbsTol
}

// Newton finds a root of f starting from x0 using the analytic derivative
// df. Once the step is inside the tolerance the iteration keeps polishing
// until the residual stops improving, so the returned root is limited by
// the floating-point precision of f rather than by RelTol. Residuals
// evaluated at a large natural scale (e.g. concentrations normalized to
// ni) bottom out far above AbsTol; an absolute residual test would never
// accept them. Returns the root and the residual there.
func Newton(f, df Func, x0 float64, settings Settings) (float64, float64, error) {
	settings = settings.withDefaults()

	x := x0
	fx := f(x)
	if fx == 0 {
		return x, 0, nil
	}

	for range settings.MaxIter {
		dfx := df(x)
		if dfx == 0 || math.IsNaN(dfx) || math.IsInf(dfx, 0) {
			return x, fx, fmt.Errorf("%w: derivative unusable at x=%g", ErrConvergence, x)
		}

		step := -fx / dfx
		if settings.MaxStep > 0 && math.Abs(step) > settings.MaxStep {
			step = math.Copysign(settings.MaxStep, step)
		}

		xNew := x + step
		fNew := f(xNew)

		if fNew == 0 || xNew == x {
			return xNew, fNew, nil
		}
		if settings.Converged(x, xNew) && math.Abs(fNew) >= math.Abs(fx) {
			// Residual has hit its floating-point floor.
			return x, fx, nil
		}

		x, fx = xNew, fNew
	}

	return x, fx, fmt.Errorf("%w: newton failed in %d iterations", ErrConvergence, settings.MaxIter)
}

// Secant finds a root of f from the two starting points x0, x1 without
// derivatives. Once an iteration brackets a sign change it switches to
// bisection, so a flat secant step cannot run away.
func Secant(f Func, x0, x1 float64, settings Settings) (float64, float64, error) {
	settings = settings.withDefaults()

	a, b := x0, x1
	fa, fb := f(a), f(b)

	if fa == 0 {
		return a, 0, nil
	}
	if fb == 0 {
		return b, 0, nil
	}

	if fa*fb < 0 {
		return bisect(f, a, b, fa, fb, settings)
	}

	for range settings.MaxIter {
		if fb == fa {
			return b, fb, fmt.Errorf("%w: secant stalled at x=%g", ErrConvergence, b)
		}
		c := b - fb*(b-a)/(fb-fa)
		fc := f(c)

		if fb*fc < 0 {
			return bisect(f, b, c, fb, fc, settings)
		}
		if settings.Converged(b, c) && math.Abs(fc) <= settings.AbsTol+settings.RelTol*math.Abs(fb) {
			return c, fc, nil
		}

		a, fa = b, fb
		b, fb = c, fc
	}

	return b, fb, fmt.Errorf("%w: secant failed in %d iterations", ErrConvergence, settings.MaxIter)
}

func bisect(f Func, a, b, fa, fb float64, settings Settings) (float64, float64, error) {
	for range settings.MaxIter {
		m := 0.5 * (a + b)
		fm := f(m)
		if fm == 0 || settings.Converged(a, b) {
			return m, fm, nil
		}
		if fa*fm < 0 {
			b, fb = m, fm
		} else {
			a, fa = m, fm
		}
	}
	m := 0.5 * (a + b)
	return m, f(m), fmt.Errorf("%w: bisection failed in %d iterations", ErrConvergence, settings.MaxIter)
}
