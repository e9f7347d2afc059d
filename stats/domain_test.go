package stats

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDomain_Validate(t *testing.T) {
	for _, domain := range []Domain{FloatDomain, LongDomain, IntDomain, DurationDomain} {
		assert.NoError(t, domain.Validate(), domain.Name)
	}

	tests := []struct {
		name     string
		domain   Domain
		problems int
	}{
		{"no divider", Domain{Name: "a", MinSeed: 0, MaxSeed: 1}, 1},
		{"inverted seeds", Domain{Name: "b", MinSeed: 1, MaxSeed: 0, Divide: divideExact}, 1},
		{"equal seeds", Domain{Name: "c", MinSeed: 3, MaxSeed: 3, Divide: divideExact}, 1},
		{"nan seed", Domain{Name: "d", MinSeed: math.NaN(), MaxSeed: 0, Divide: divideExact}, 1},
		{"nan zero", Domain{Name: "e", Zero: math.NaN(), MinSeed: 0, MaxSeed: 1, Divide: divideExact}, 1},
		{"everything", Domain{Name: "f", Zero: math.NaN(), MinSeed: 2, MaxSeed: 1}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.domain.Validate()
			require.Error(t, err)
			problems := multierr.Errors(err)
			assert.Len(t, problems, tt.problems)
			for _, problem := range problems {
				assert.Equal(t, ErrInvalidDomain, errors.Cause(problem))
			}
		})
	}
}

func TestDomainByName(t *testing.T) {
	for _, name := range []string{"float", "long", "int", "duration"} {
		domain, err := DomainByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, domain.Name)
		assert.NotNil(t, domain.Divide)
	}

	_, err := DomainByName("decimal")
	assert.Equal(t, ErrInvalidDomain, errors.Cause(err))
}

func TestDivideRound(t *testing.T) {
	assert.Equal(t, 3.0, divideRound(10, 4))
	assert.Equal(t, 2.0, divideRound(9, 4))
	assert.Equal(t, 2.0, divideRound(10, 5))
	assert.Equal(t, -2.0, divideRound(-10, 4))
	assert.Equal(t, 2.5, divideExact(10, 4))
}
