package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDestination(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "leading zero", in: "08123456789", want: "628123456789"},
		{name: "already international", in: "628123456789", want: "628123456789"},
		{name: "bare without prefix", in: "8123456789", want: "628123456789"},
		{name: "spaces and dashes stripped", in: "0812-3456-789", want: "628123456789"},
		{name: "plus prefix stripped", in: "+628123456789", want: "628123456789"},
		{name: "too short", in: "081234567", wantErr: true},
		{name: "too long", in: "0812345678901234", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "letters only", in: "halo bang", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDestination(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDestination)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
