// internal/estimator/strategy_test.go
package estimator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategyName(t *testing.T) {
	tests := []struct {
		input    string
		expected StrategyName
		wantErr  bool
	}{
		{"heuristic", Heuristic, false},
		{"Standardized", Standardized, false},
		{"  REGRESSION ", Regression, false},
		{"neural", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, err := ParseStrategyName(tt.input)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownStrategy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(Standardized, NewHeuristicStrategy(), NewStandardizedStrategy())
	require.NoError(t, err)

	t.Run("empty name resolves to default", func(t *testing.T) {
		s, err := r.Get("")
		require.NoError(t, err)
		assert.Equal(t, Standardized, s.Info().Name)
		assert.Equal(t, Standardized, r.Default())
	})

	t.Run("lookup by name", func(t *testing.T) {
		s, err := r.Get("HEURISTIC")
		require.NoError(t, err)
		assert.Equal(t, Heuristic, s.Info().Name)
	})

	t.Run("known but not enabled", func(t *testing.T) {
		_, err := r.Get("regression")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownStrategy))
		assert.Contains(t, err.Error(), "not enabled")
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := r.Get("gradient-boosting")
		assert.True(t, errors.Is(err, ErrUnknownStrategy))
	})

	t.Run("infos keep registration order", func(t *testing.T) {
		infos := r.Infos()
		require.Len(t, infos, 2)
		assert.Equal(t, Heuristic, infos[0].Name)
		assert.Equal(t, Standardized, infos[1].Name)
	})
}

func TestNewRegistry_Errors(t *testing.T) {
	_, err := NewRegistry(Heuristic, NewHeuristicStrategy(), NewHeuristicStrategy())
	assert.ErrorContains(t, err, "registered twice")

	_, err = NewRegistry(Regression, NewHeuristicStrategy())
	assert.ErrorContains(t, err, "not registered")
}

func TestMarketTier(t *testing.T) {
	tests := []struct {
		price    int
		expected string
	}{
		{1500000, "Luxury Market"},
		{800001, "Luxury Market"},
		{800000, "Premium Market"},
		{500001, "Premium Market"},
		{500000, "Mid-Range Market"},
		{300001, "Mid-Range Market"},
		{300000, "Budget Market"},
		{50000, "Budget Market"},
		{-10000, "Budget Market"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MarketTier(tt.price), "price %d", tt.price)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 50000.0, clamp(-1e9, 50000, 800000))
	assert.Equal(t, 800000.0, clamp(1e9, 50000, 800000))
	assert.Equal(t, 123456.5, clamp(123456.5, 50000, 800000))
}
