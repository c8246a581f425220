package auth

import (
	"testing"
	"time"
)

const testPassword = "sharedsecret"

func TestVerifySign(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		nameEncoded string
		userID      int64
		sign        string
		expected    bool
	}{
		{
			name:        "ascii name",
			displayName: "Santa",
			userID:      123456,
			sign:        "59090cf822a2354ee5d7d9be164a70b3",
			expected:    true,
		},
		{
			name:        "cyrillic name signed over decoded form",
			displayName: "Дед Мороз",
			nameEncoded: "%D0%94%D0%B5%D0%B4%20%D0%9C%D0%BE%D1%80%D0%BE%D0%B7",
			userID:      123456,
			sign:        "d36a5013dd0ebb4722aff4dd8e75205b",
			expected:    true,
		},
		{
			name:        "cyrillic name signed over the raw encoded form",
			displayName: "Дед Мороз",
			nameEncoded: "%D0%94%D0%B5%D0%B4%20%D0%9C%D0%BE%D1%80%D0%BE%D0%B7",
			userID:      123456,
			sign:        "9feceba6512e482ca1e407b7fbd54bad",
			expected:    true,
		},
		{
			name:        "wrong sign",
			displayName: "Santa",
			userID:      123456,
			sign:        "00000000000000000000000000000000",
			expected:    false,
		},
		{
			name:        "sign over a different user id",
			displayName: "Santa",
			userID:      654321,
			sign:        "59090cf822a2354ee5d7d9be164a70b3",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySign(testPassword, tt.displayName, tt.nameEncoded, tt.userID, tt.sign)
			if got != tt.expected {
				t.Errorf("VerifySign = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestVerifySign2(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		synd     float64
		userID   int64
		sign2    string
		expected bool
	}{
		{
			name:     "fractional syndicate rounds before signing",
			level:    12,
			synd:     7.6,
			userID:   123456,
			sign2:    "9b1ee33a24954200f7c12ff13c981fb8",
			expected: true,
		},
		{
			name:     "negative syndicate",
			level:    5,
			synd:     -3.2,
			userID:   123456,
			sign2:    "2704ac021fb8a9da78beb8bacac47b21",
			expected: true,
		},
		{
			name:     "half value rounds to even, down",
			level:    9,
			synd:     2.5,
			userID:   123456,
			sign2:    "2cd681d16b1a530dd053b9372ae8e3ac",
			expected: true,
		},
		{
			name:     "half value rounds to even, up",
			level:    9,
			synd:     3.5,
			userID:   123456,
			sign2:    "109b322b29e2e1d3599e71e3238a7cca",
			expected: true,
		},
		{
			name:     "negative half value rounds toward zero",
			level:    4,
			synd:     -2.5,
			userID:   123456,
			sign2:    "1a3e05a8b1c52b61c9ecd8471e8c1195",
			expected: true,
		},
		{
			name:     "wrong level",
			level:    13,
			synd:     7.6,
			userID:   123456,
			sign2:    "9b1ee33a24954200f7c12ff13c981fb8",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySign2(testPassword, tt.level, tt.synd, tt.userID, tt.sign2)
			if got != tt.expected {
				t.Errorf("VerifySign2 = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestVerifySign3(t *testing.T) {
	tests := []struct {
		name        string
		displayName string
		userID      int64
		hasPassport int
		hasMobile   int
		oldPassport int
		sign3       string
		expected    bool
	}{
		{
			name:        "cyrillic name",
			displayName: "Дед Мороз",
			userID:      123456,
			hasPassport: 1,
			hasMobile:   1,
			oldPassport: 0,
			sign3:       "b3ed239664",
			expected:    true,
		},
		{
			name:        "ascii name with different flags",
			displayName: "Santa",
			userID:      123456,
			hasPassport: 0,
			hasMobile:   1,
			oldPassport: 1,
			sign3:       "68502c1840",
			expected:    true,
		},
		{
			name:        "flags matter",
			displayName: "Дед Мороз",
			userID:      123456,
			hasPassport: 0,
			hasMobile:   1,
			oldPassport: 0,
			sign3:       "b3ed239664",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySign3(testPassword, tt.displayName, tt.userID, tt.hasPassport, tt.hasMobile, tt.oldPassport, tt.sign3)
			if got != tt.expected {
				t.Errorf("VerifySign3 = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestVerifySign4(t *testing.T) {
	sign3 := "b3ed239664"
	sign4 := "8aa4dce6c9"

	signDay := time.Date(2025, 12, 20, 15, 30, 0, 0, time.UTC)
	if !VerifySign4(testPassword, sign3, sign4, signDay) {
		t.Errorf("VerifySign4 = false on the signing day, want true")
	}

	// The date is baked into the hash, so the same URL dies at midnight
	nextDay := signDay.Add(24 * time.Hour)
	if VerifySign4(testPassword, sign3, sign4, nextDay) {
		t.Errorf("VerifySign4 = true the next day, want false")
	}
}

func TestLoginRedirectURL(t *testing.T) {
	got := LoginRedirectURL(42, "https://santa.example.com/api/v1/auth/gwars")
	want := "https://www.gwars.io/cross-server-login.php?site_id=42&url=https://santa.example.com/api/v1/auth/gwars"
	if got != want {
		t.Errorf("LoginRedirectURL = %q, want %q", got, want)
	}
}
