package stats

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

var ErrInvalidDomain = errors.New("invalid numeric domain")

// Divider turns the combined value of n observations into the value of a
// single observation.
type Divider func(aggregate float64, n int64) float64

// Domain is the numeric policy a Calculator is built for: what to report
// when there is no data, the seeds for min and max, and how aggregates are
// split into per-observation values.
type Domain struct {
	Name string
	// Zero is returned by Percentile when nothing has been recorded.
	Zero float64
	// MinSeed primes Max and MaxSeed primes Min, so that the first
	// observation always replaces both.
	MinSeed float64
	MaxSeed float64
	Divide  Divider
}

func divideExact(aggregate float64, n int64) float64 {
	return aggregate / float64(n)
}

// divideRound rounds half up, so 2.5 becomes 3 and -2.5 becomes -2.
func divideRound(aggregate float64, n int64) float64 {
	return math.Floor(aggregate/float64(n) + 0.5)
}

var (
	FloatDomain = Domain{
		Name:    "float",
		Zero:    0,
		MinSeed: -math.MaxFloat64,
		MaxSeed: math.MaxFloat64,
		Divide:  divideExact,
	}

	LongDomain = Domain{
		Name:    "long",
		Zero:    0,
		MinSeed: math.MinInt64,
		MaxSeed: math.MaxInt64,
		Divide:  divideRound,
	}

	IntDomain = Domain{
		Name:    "int",
		Zero:    0,
		MinSeed: math.MinInt32,
		MaxSeed: math.MaxInt32,
		Divide:  divideRound,
	}

	// DurationDomain holds nanoseconds.
	DurationDomain = Domain{
		Name:    "duration",
		Zero:    0,
		MinSeed: math.MinInt64,
		MaxSeed: math.MaxInt64,
		Divide:  divideRound,
	}
)

var domains = map[string]Domain{
	FloatDomain.Name:    FloatDomain,
	LongDomain.Name:     LongDomain,
	IntDomain.Name:      IntDomain,
	DurationDomain.Name: DurationDomain,
}

func DomainByName(name string) (Domain, error) {
	domain, ok := domains[name]
	if !ok {
		return Domain{}, errors.Wrapf(ErrInvalidDomain, "unknown domain %q", name)
	}
	return domain, nil
}

// Validate reports every problem that would break the min/max invariant
// or the aggregate split.
func (domain Domain) Validate() error {
	var err error
	if domain.Divide == nil {
		err = multierr.Append(err,
			errors.Wrapf(ErrInvalidDomain, "domain %q has no divider", domain.Name))
	}
	if math.IsNaN(domain.Zero) {
		err = multierr.Append(err,
			errors.Wrapf(ErrInvalidDomain, "domain %q: zero is NaN", domain.Name))
	}
	if math.IsNaN(domain.MinSeed) || math.IsNaN(domain.MaxSeed) {
		err = multierr.Append(err,
			errors.Wrapf(ErrInvalidDomain, "domain %q: seed is NaN", domain.Name))
	} else if domain.MinSeed >= domain.MaxSeed {
		err = multierr.Append(err,
			errors.Wrapf(ErrInvalidDomain, "domain %q: min seed %v not below max seed %v",
				domain.Name, domain.MinSeed, domain.MaxSeed))
	}
	return err
}
