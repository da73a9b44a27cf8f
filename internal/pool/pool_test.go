package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		name        string
		concurrency int
		want        int
	}{
		{"zero is unlimited", 0, Unlimited},
		{"negative is unlimited", -3, Unlimited},
		{"one", 1, 1},
		{"positive passes through", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Limit(tt.concurrency))
		})
	}
}
