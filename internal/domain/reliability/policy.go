package reliability

// OperatingHoursPolicy is the continuous-operation baseline used by the
// metrics engine. The defaults assume round-the-clock operation; a
// shift-calendar aware deployment swaps the policy, not the call sites.
type OperatingHoursPolicy struct {
	HoursPerYear  float64
	HoursPerMonth float64
}

func DefaultOperatingHoursPolicy() OperatingHoursPolicy {
	return OperatingHoursPolicy{
		HoursPerYear:  8760,
		HoursPerMonth: 730,
	}
}

func (p OperatingHoursPolicy) Validate() error {
	if p.HoursPerYear <= 0 || p.HoursPerMonth <= 0 {
		return ErrInvalidOperatingHours
	}
	return nil
}
