package curve

import (
	"errors"
	"math/big"
)

// ErrInvalidCurveParameters is returned for curve configurations that would
// break cost monotonicity or leave the pricing domain, such as a zero
// divisor. Failing fast here is what keeps the inversion search correct.
var ErrInvalidCurveParameters = errors.New("invalid sale curve parameters")

// DefaultUnitScale is the token-quantity granularity of one pricing tick.
const DefaultUnitScale = 1_000_000_000_000

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	six   = big.NewInt(6)
	scale = big.NewInt(36)
)

// SaleCurve describes a token-sale bonding curve: quadratic per-tick pricing
// up to QuadCap, constant per-tick pricing beyond it. The curve is a pure
// function of its parameters; the quantity already sold is supplied per call
// and never stored.
type SaleCurve struct {
	// SaleCap is the total sellable token quantity in smallest units.
	SaleCap *big.Int
	// Divisor scales curve steepness; must be positive.
	Divisor *big.Int
	// EthTarget is the target cumulative raise in wei.
	EthTarget *big.Int
	// QuadCap, when non-nil, is the token quantity past which pricing turns
	// linear. Must lie in (0, SaleCap].
	QuadCap *big.Int
	// UnitScale is the tick granularity; NewSaleCurve fills in
	// DefaultUnitScale when zero.
	UnitScale *big.Int
}

// NewSaleCurve builds a validated curve, applying DefaultUnitScale when no
// unit scale is given.
func NewSaleCurve(saleCap, divisor, ethTarget, quadCap *big.Int) (SaleCurve, error) {
	c := SaleCurve{
		SaleCap:   saleCap,
		Divisor:   divisor,
		EthTarget: ethTarget,
		QuadCap:   quadCap,
		UnitScale: big.NewInt(DefaultUnitScale),
	}
	if err := c.Validate(); err != nil {
		return SaleCurve{}, err
	}
	return c, nil
}

// Validate checks the parameter invariants the pricing functions rely on.
func (c SaleCurve) Validate() error {
	if c.SaleCap == nil || c.SaleCap.Sign() <= 0 {
		return ErrInvalidCurveParameters
	}
	if c.Divisor == nil || c.Divisor.Sign() <= 0 {
		return ErrInvalidCurveParameters
	}
	if c.UnitScale == nil || c.UnitScale.Sign() <= 0 {
		return ErrInvalidCurveParameters
	}
	if c.QuadCap != nil {
		if c.QuadCap.Sign() <= 0 || c.QuadCap.Cmp(c.SaleCap) > 0 {
			return ErrInvalidCurveParameters
		}
	}
	return nil
}

// Cost returns the cumulative wei cost of having sold the given token
// quantity (smallest units). The quantity must lie in [0, SaleCap].
func (c SaleCurve) Cost(sold *big.Int) (*big.Int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if sold == nil || sold.Sign() < 0 || sold.Cmp(c.SaleCap) > 0 {
		return nil, ErrInvalidCurveParameters
	}
	return c.costAtTick(new(big.Int).Quo(sold, c.UnitScale)), nil
}

// MarginalPrice returns the wei cost of the single next tick at the given
// sold quantity. It is implemented as the cost delta of one tick, never as
// a separately derived formula, so it agrees with Cost by construction.
func (c SaleCurve) MarginalPrice(sold *big.Int) (*big.Int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if sold == nil || sold.Sign() < 0 || sold.Cmp(c.SaleCap) > 0 {
		return nil, ErrInvalidCurveParameters
	}

	ticks := new(big.Int).Quo(sold, c.UnitScale)
	next := c.costAtTick(new(big.Int).Add(ticks, one))
	return next.Sub(next, c.costAtTick(ticks)), nil
}

// costAtTick evaluates the cumulative cost of m whole ticks.
//
// Quadratic phase: the per-tick price grows with the square of the tick
// index, so the cumulative cost is the closed-form sum of squares
// m(m-1)(2m-1)/6 scaled by 1/(6*Divisor). Both divisions fold into a single
// truncating division by 36*Divisor, multiplying before dividing so no
// intermediate fraction is lost. The leading ticks price to zero under any
// realistic divisor, which keeps the origin free of a degenerate zero price.
//
// Linear phase (m past the quad cap K): the cost through K plus (m-K) ticks
// at the constant marginal price K^2/(6*Divisor), again as one fused
// expression. At m == K the linear contribution is zero, so the two phases
// meet exactly.
func (c SaleCurve) costAtTick(m *big.Int) *big.Int {
	if m.Sign() <= 0 {
		return new(big.Int)
	}

	quadTicks := m
	capped := false
	if c.QuadCap != nil {
		k := new(big.Int).Quo(c.QuadCap, c.UnitScale)
		if m.Cmp(k) > 0 {
			quadTicks = k
			capped = true
		}
	}

	cost := sumOfSquares(quadTicks)
	cost.Quo(cost, new(big.Int).Mul(scale, c.Divisor))

	if capped {
		linear := new(big.Int).Sub(m, quadTicks)
		linear.Mul(linear, quadTicks)
		linear.Mul(linear, quadTicks)
		linear.Quo(linear, new(big.Int).Mul(six, c.Divisor))
		cost.Add(cost, linear)
	}

	return cost
}

// sumOfSquares returns m*(m-1)*(2m-1), the sum of squares below m times six.
func sumOfSquares(m *big.Int) *big.Int {
	s := new(big.Int).Sub(m, one)
	s.Mul(s, m)
	twiceM := new(big.Int).Mul(two, m)
	return s.Mul(s, twiceM.Sub(twiceM, one))
}
