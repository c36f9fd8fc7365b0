package curve

import "math/big"

// FindTokensForTarget inverts the cumulative cost function: it returns the
// largest token quantity (a whole number of ticks, in smallest units) whose
// cost does not exceed target, together with that cost. The next tick up is
// the first quantity whose cost exceeds the target, so a caller that wants
// the nearest candidate rather than the floor can compare the two; exact
// equality is the exception in a discrete domain, not the rule.
//
// The search is an index-based interval narrowing over tick counts with an
// iteration bound derived from the range's bit length, so it terminates for
// any inputs. Cost monotonicity (enforced by Validate) is what makes it
// correct.
func (c SaleCurve) FindTokensForTarget(target *big.Int) (tokens, cost *big.Int, err error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	if target == nil || target.Sign() < 0 {
		return nil, nil, ErrInvalidCurveParameters
	}

	lo := new(big.Int)
	hi := new(big.Int).Quo(c.SaleCap, c.UnitScale)

	maxIterations := hi.BitLen() + 1
	for i := 0; i < maxIterations && lo.Cmp(hi) < 0; i++ {
		// Upper midpoint so the interval always shrinks when lo advances.
		mid := new(big.Int).Add(lo, hi)
		mid.Add(mid, one)
		mid.Rsh(mid, 1)

		if c.costAtTick(mid).Cmp(target) <= 0 {
			lo.Set(mid)
		} else {
			hi.Sub(mid, one)
		}
	}

	return new(big.Int).Mul(lo, c.UnitScale), c.costAtTick(lo), nil
}
