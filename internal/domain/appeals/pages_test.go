package appeals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPages(t *testing.T) {
	tests := []struct {
		name    string
		count   int64
		perPage int
		want    int
	}{
		{"twelve by five", 12, 5, 3},
		{"empty", 0, 5, 0},
		{"exact multiple", 10, 5, 2},
		{"one item", 1, 5, 1},
		{"one less than page", 4, 5, 1},
		{"one more than page", 6, 5, 2},
		{"zero per page", 12, 0, 0},
		{"negative count", -1, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Pages(tt.count, tt.perPage))
		})
	}
}
