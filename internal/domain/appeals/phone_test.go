package appeals

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanPhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plus and spaces", "+998 90 123 45 67", "998901234567"},
		{"dashes and parens", "(998) 90-123-45-67", "998901234567"},
		{"already clean", "998901234567", "998901234567"},
		{"letters dropped", "tel:998901234567", "998901234567"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanPhone(tt.raw))
		})
	}
}

func TestValidatePhoneClean(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   bool
	}{
		{"valid operator 90", "998901234567", true},
		{"valid operator 99", "998991234567", true},
		{"valid operator 93", "998931112233", true},
		{"operator not starting with 9", "998711234567", false},
		{"too short", "99890123456", false},
		{"too long", "9989012345678", false},
		{"wrong country code", "997901234567", false},
		{"national only", "901234567", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhoneClean(tt.digits))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"contact share with plus", "+998901234567", "+998901234567", true},
		{"without plus", "998901234567", "+998901234567", true},
		{"formatted", "+998 (90) 123-45-67", "+998901234567", true},
		{"national nine digits", "901234567", "+998901234567", true},
		{"national formatted", "90 123 45 67", "+998901234567", true},
		{"landline code", "998711234567", "", false},
		{"foreign number", "+79261234567", "", false},
		{"garbage", "hello", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePhone(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
