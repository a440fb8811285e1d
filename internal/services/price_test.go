package services

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain dollar amount", input: "$14.70", want: 14.70},
		{name: "thousands separator", input: "$1,234.50", want: 1234.50},
		{name: "no currency symbol", input: "14.70", want: 14.70},
		{name: "surrounding whitespace", input: "  $9.99  ", want: 9.99},
		{name: "non-breaking space", input: "$12.00 ", want: 12.00},
		{name: "integer price", input: "$5", want: 5},
		{name: "empty", input: "", wantErr: true},
		{name: "only symbol", input: "$", wantErr: true},
		{name: "garbage", input: "no price", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanPriceDegradesToZero(t *testing.T) {
	log := logrus.New()

	assert.Equal(t, 14.70, CleanPrice("$14.70", log))
	assert.Equal(t, 1234.50, CleanPrice("$1,234.50", log))

	// The lenient catalog-price path never errors: junk warns and becomes 0.0
	assert.Equal(t, 0.0, CleanPrice("not a price", log))
	assert.Equal(t, 0.0, CleanPrice("", log))
}
