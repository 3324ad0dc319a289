// Package derive turns emission-line measurements into astrophysical
// estimates.
//
// Every operation is a pure function of unit-bearing quantities:
//
//   - DopplerVelocity: wavelength shift to line-of-sight velocity
//     (relativistic), with DispersionFromWidth and RotationVelocity as the
//     two ways the measurements feed it
//   - BlackHoleMass: M–σ power law
//   - ProjectedDistance: small-angle separation at a known distance
//   - EnclosedMass: r·v²/G from the balance of gravity and centripetal
//     acceleration
//   - SphereDensity: mean density of a uniform sphere
//   - FractionalError: (measured - reference) / measured
//
// Inputs are validated before any arithmetic. Incompatible dimensions
// fail with *InvalidUnitError, values outside a formula's domain with
// *DomainError, and missing measurements with *InsufficientInputError.
// Nothing is retried or defaulted.
//
// # Caveats
//
// Black-hole and enclosed masses are lower limits: the line-of-sight
// velocities are not corrected for inclination. No correction is applied;
// [Pipeline] lists the caveats in its [Result].
//
// # Usage
//
//	c := derive.ApplyConstantOptions(derive.WithDistance(quantity.MustParse(13.3, "Mpc")))
//	res, err := derive.NewPipeline(c).Run(state, plan)
package derive
