package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership-syncer/internal/domain"
)

func TestCanonicalAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "lowercase address is checksummed",
			input: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			want:  "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		},
		{
			name:  "already checksummed address is unchanged",
			input: "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
			want:  "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		},
		{
			name:  "surrounding whitespace is ignored",
			input: "  0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb ",
			want:  "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		},
		{
			name:  "zero address",
			input: domain.ETHEREUM_ZERO_ADDRESS,
			want:  domain.ETHEREUM_ZERO_ADDRESS,
		},
		{
			name:    "too short",
			input:   "0x1234",
			wantErr: true,
		},
		{
			name:    "not hex",
			input:   "0xZZaeb6053f3e94c9b9a09f33669435e7ef1beaed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.CanonicalAddress(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidAddress))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
