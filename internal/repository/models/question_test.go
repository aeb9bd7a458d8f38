package models

import (
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name string
		s    StringSlice
		want driver.Value
	}{
		{"nil slice", nil, "[]"},
		{"empty slice", StringSlice{}, "[]"},
		{"options", StringSlice{"1889", "Nahuatl word meaning 'half'"}, `["1889","Nahuatl word meaning 'half'"]`},
		{"delimiter characters", StringSlice{"a|b", "c"}, `["a|b","c"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    StringSlice
		wantErr bool
	}{
		{"nil", nil, StringSlice{}, false},
		{"bytes", []byte(`["a","b"]`), StringSlice{"a", "b"}, false},
		{"string", `["x"]`, StringSlice{"x"}, false},
		{"empty string", "", StringSlice{}, false},
		{"json null", "null", StringSlice{}, false},
		{"unsupported type", 42, nil, true},
		{"malformed json", "[oops", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}
