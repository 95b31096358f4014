package pricing

import "math/rand/v2"

// Quote is the fare and distance estimate attached to a ride at request time.
type Quote struct {
	Fare           int
	DistanceMeters int
}

// Estimator produces a quote for a requested trip. The production
// implementation is a placeholder for an absent pricing/routing engine;
// injecting the interface keeps the lifecycle engine independent of it.
type Estimator interface {
	Estimate(pickup, dropoff string) Quote
}

const (
	minFare        = 100
	fareSpread     = 1000
	minDistance    = 1000
	distanceSpread = 5000
)

// RandomEstimator returns uniform random placeholder quotes:
// fare in [100,1099], distance in [1000,5999] meters.
type RandomEstimator struct{}

func NewRandomEstimator() *RandomEstimator {
	return &RandomEstimator{}
}

func (e *RandomEstimator) Estimate(pickup, dropoff string) Quote {
	return Quote{
		Fare:           minFare + rand.IntN(fareSpread),
		DistanceMeters: minDistance + rand.IntN(distanceSpread),
	}
}
