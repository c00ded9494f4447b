package quota

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"quotient-hq/abacus/pkg/settings"
)

func TestDisplayNumber(t *testing.T) {
	tests := []struct {
		name  string
		quota float64
		want  string
	}{
		{"zero", 0, "0"},
		{"small integer", 999, "999"},
		{"below abbreviation threshold", 9999, "9999"},
		{"thousands boundary", 10000, "10.0k"},
		{"thousands", 15500, "15.5k"},
		{"millions boundary", 1000000, "1.0M"},
		{"millions", 2300000, "2.3M"},
		{"billions boundary", 1000000000, "1.0B"},
		{"billions", 1500000000, "1.5B"},
		{"nan treated as zero", math.NaN(), "0"},
		{"inf treated as zero", math.Inf(1), "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayNumber(tt.quota); got != tt.want {
				t.Errorf("DisplayNumber(%v) = %q, want %q", tt.quota, got, tt.want)
			}
		})
	}
}

func TestDisplayNumberMonotonic(t *testing.T) {
	// Abbreviated values must not decrease as quota increases across
	// the suffix boundaries.
	parse := func(s string) float64 {
		mult := 1.0
		switch s[len(s)-1] {
		case 'k':
			mult, s = 1e3, s[:len(s)-1]
		case 'M':
			mult, s = 1e6, s[:len(s)-1]
		case 'B':
			mult, s = 1e9, s[:len(s)-1]
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("unparseable display number %q: %v", s, err)
		}
		return v * mult
	}

	prev := -1.0
	for _, q := range []float64{0, 1, 999, 9999, 10000, 99999, 999999, 1000000, 9999999, 999999999, 1000000000, 5000000000} {
		got := parse(DisplayNumber(q))
		if got < prev {
			t.Errorf("DisplayNumber not monotonic at %v: %v < %v", q, got, prev)
		}
		prev = got
	}
}

func TestConverterCurrency(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]string
		quota   float64
		digits  int
		want    string
		wantErr error
	}{
		{
			name: "currency mode",
			values: map[string]string{
				settings.KeyQuotaPerUnit:      "500000",
				settings.KeyDisplayInCurrency: "true",
			},
			quota:  750000,
			digits: 2,
			want:   "$1.50",
		},
		{
			name: "currency mode custom digits",
			values: map[string]string{
				settings.KeyQuotaPerUnit:      "500000",
				settings.KeyDisplayInCurrency: "true",
			},
			quota:  1,
			digits: 6,
			want:   "$0.000002",
		},
		{
			name: "quota display mode falls back to abbreviation",
			values: map[string]string{
				settings.KeyQuotaPerUnit:      "500000",
				settings.KeyDisplayInCurrency: "false",
			},
			quota:  2300000,
			digits: 2,
			want:   "2.3M",
		},
		{
			name: "nan quota renders as zero amount",
			values: map[string]string{
				settings.KeyQuotaPerUnit:      "500000",
				settings.KeyDisplayInCurrency: "true",
			},
			quota:  math.NaN(),
			digits: 2,
			want:   "$0.00",
		},
		{
			name: "zero rate in currency mode is unavailable",
			values: map[string]string{
				settings.KeyQuotaPerUnit:      "0",
				settings.KeyDisplayInCurrency: "true",
			},
			quota:   500000,
			digits:  2,
			wantErr: ErrUnavailable,
		},
		{
			name: "missing rate in quota mode still renders",
			values: map[string]string{
				settings.KeyDisplayInCurrency: "false",
			},
			quota:  12345,
			digits: 2,
			want:   "12345",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConverter(settings.NewStaticSource(tt.values))

			got, err := c.Currency(context.Background(), tt.quota, tt.digits)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Currency() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Currency() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Currency(%v, %d) = %q, want %q", tt.quota, tt.digits, got, tt.want)
			}
		})
	}
}

func TestConverterRoundTrip(t *testing.T) {
	src := settings.NewExchangeSource(500000, true)
	c := NewConverter(src)
	ctx := context.Background()

	for _, q := range []float64{0, 1, 499, 500000, 1234567, 987654321} {
		s, err := c.UnitString(ctx, q, 12)
		if err != nil {
			t.Fatalf("UnitString(%v) error = %v", q, err)
		}
		amount, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("UnitString(%v) produced unparseable value %q", q, s)
		}
		back, err := c.FromCurrency(ctx, amount)
		if err != nil {
			t.Fatalf("FromCurrency(%v) error = %v", amount, err)
		}
		if math.Abs(back-q) > 1e-6*math.Max(1, q) {
			t.Errorf("round trip of %v gave %v", q, back)
		}
	}
}

func TestConverterObservesRateChange(t *testing.T) {
	src := settings.NewExchangeSource(500000, true)
	c := NewConverter(src)
	ctx := context.Background()

	got, err := c.Currency(ctx, 500000, 2)
	if err != nil {
		t.Fatalf("Currency() error = %v", err)
	}
	if got != "$1.00" {
		t.Fatalf("Currency() = %q, want $1.00", got)
	}

	// The converter must not cache the previous rate.
	src.Set(settings.KeyQuotaPerUnit, "250000")

	got, err = c.Currency(ctx, 500000, 2)
	if err != nil {
		t.Fatalf("Currency() error = %v", err)
	}
	if got != "$2.00" {
		t.Errorf("Currency() after rate change = %q, want $2.00", got)
	}
}

func TestConverterUnavailable(t *testing.T) {
	c := NewConverter(settings.NewStaticSource(nil))
	ctx := context.Background()

	if _, err := c.FromCurrency(ctx, 1); !errors.Is(err, ErrUnavailable) {
		t.Errorf("FromCurrency() error = %v, want ErrUnavailable", err)
	}
	if _, err := c.UnitString(ctx, 1, 6); !errors.Is(err, ErrUnavailable) {
		t.Errorf("UnitString() error = %v, want ErrUnavailable", err)
	}
}
