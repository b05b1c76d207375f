package engine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSelfDriveRate() SelfDriveRate {
	return SelfDriveRate{
		Km150Rate:   dec("2000"),
		Km250Rate:   dec("2800"),
		Km600Rate:   dec("4500"),
		Deposit:     dec("5000"),
		ExtraKmRate: dec("10"),
		ExtraHrRate: dec("150"),
	}
}

func testChauffeurRate() ChauffeurRate {
	return ChauffeurRate{
		Base8Hr80Km:      dec("3500"),
		ExtraKmRate:      dec("15"),
		ExtraHrRate:      dec("200"),
		OutstationKmRate: dec("14"),
		DriverAllowance:  dec("500"),
	}
}

func TestPriceSelfDrive_TierBoundaries(t *testing.T) {
	rate := testSelfDriveRate()

	tests := []struct {
		name     string
		km       int
		wantBase string
	}{
		{name: "well inside first tier", km: 100, wantBase: "2000"},
		{name: "exactly 150 stays in first tier", km: 150, wantBase: "2000"},
		{name: "151 moves to second tier", km: 151, wantBase: "2800"},
		{name: "exactly 250 stays in second tier", km: 250, wantBase: "2800"},
		{name: "251 moves to long-distance tier", km: 251, wantBase: "4500"},
		{name: "zero distance uses first tier", km: 0, wantBase: "2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceSelfDrive(rate, 1, tt.km)
			if err != nil {
				t.Fatalf("PriceSelfDrive() error = %v", err)
			}
			if !got.BaseRate.Equal(dec(tt.wantBase)) {
				t.Errorf("BaseRate = %s, want %s", got.BaseRate, tt.wantBase)
			}
		})
	}
}

func TestPriceSelfDrive_TaxAndTotal(t *testing.T) {
	got, err := PriceSelfDrive(testSelfDriveRate(), 3, 200)
	if err != nil {
		t.Fatalf("PriceSelfDrive() error = %v", err)
	}

	// 2800 * 3 = 8400; tax = 1008; total = 9408
	if !got.Subtotal.Equal(dec("8400")) {
		t.Errorf("Subtotal = %s, want 8400", got.Subtotal)
	}
	if !got.Tax.Equal(dec("1008")) {
		t.Errorf("Tax = %s, want 1008", got.Tax)
	}
	if !got.Total.Equal(got.Subtotal.Mul(dec("1.12"))) {
		t.Errorf("Total = %s, want subtotal*1.12 = %s", got.Total, got.Subtotal.Mul(dec("1.12")))
	}
	if got.Outstation {
		t.Error("self-drive quote should never flag outstation")
	}
}

func TestPriceSelfDrive_OverageRatesNotBilled(t *testing.T) {
	got, err := PriceSelfDrive(testSelfDriveRate(), 1, 100)
	if err != nil {
		t.Fatalf("PriceSelfDrive() error = %v", err)
	}
	if !got.ExtraKmRate.Equal(dec("10")) || !got.ExtraHrRate.Equal(dec("150")) {
		t.Errorf("overage rates not echoed: km=%s hr=%s", got.ExtraKmRate, got.ExtraHrRate)
	}
	// Overages are informational only: total must be exactly base*days*1.12.
	if !got.Total.Equal(dec("2240")) {
		t.Errorf("Total = %s, want 2240", got.Total)
	}
}

func TestPriceSelfDrive_InvalidInput(t *testing.T) {
	rate := testSelfDriveRate()

	if _, err := PriceSelfDrive(rate, 0, 100); !errors.Is(err, ErrInvalidDays) {
		t.Errorf("days=0 error = %v, want ErrInvalidDays", err)
	}
	if _, err := PriceSelfDrive(rate, -1, 100); !errors.Is(err, ErrInvalidDays) {
		t.Errorf("days=-1 error = %v, want ErrInvalidDays", err)
	}
	if _, err := PriceSelfDrive(rate, 1, -5); !errors.Is(err, ErrInvalidDistance) {
		t.Errorf("km=-5 error = %v, want ErrInvalidDistance", err)
	}
}

func TestPriceSelfDrive_Determinism(t *testing.T) {
	rate := testSelfDriveRate()
	first, err := PriceSelfDrive(rate, 5, 220)
	if err != nil {
		t.Fatalf("PriceSelfDrive() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := PriceSelfDrive(rate, 5, 220)
		if err != nil {
			t.Fatalf("PriceSelfDrive() error = %v", err)
		}
		if !again.Total.Equal(first.Total) || !again.Subtotal.Equal(first.Subtotal) || !again.Tax.Equal(first.Tax) {
			t.Fatalf("call %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestPriceChauffeur_LocalOverage(t *testing.T) {
	// Worked example: 3500 + 2*200 + 20*15 = 4200/day; 1 day; total 4704.
	got, err := PriceChauffeur(testChauffeurRate(), 1, 10, 100, AreaWithinCity)
	if err != nil {
		t.Fatalf("PriceChauffeur() error = %v", err)
	}
	if !got.BaseRate.Equal(dec("4200")) {
		t.Errorf("daily rate = %s, want 4200", got.BaseRate)
	}
	if !got.Subtotal.Equal(dec("4200")) {
		t.Errorf("Subtotal = %s, want 4200", got.Subtotal)
	}
	if !got.DriverAllowance.IsZero() {
		t.Errorf("local trip DA = %s, want 0", got.DriverAllowance)
	}
	if !got.Total.Equal(dec("4704")) {
		t.Errorf("Total = %s, want 4704", got.Total)
	}
}

func TestPriceChauffeur_LocalWithinPackage(t *testing.T) {
	// No overage below 8 hours / 80 km.
	got, err := PriceChauffeur(testChauffeurRate(), 2, 8, 60, AreaAdjacentMetro)
	if err != nil {
		t.Fatalf("PriceChauffeur() error = %v", err)
	}
	if !got.BaseRate.Equal(dec("3500")) {
		t.Errorf("daily rate = %s, want base 3500", got.BaseRate)
	}
	if !got.Subtotal.Equal(dec("7000")) {
		t.Errorf("Subtotal = %s, want 7000", got.Subtotal)
	}
	if got.Outstation {
		t.Error("adjacent metro must use local pricing")
	}
}

func TestPriceChauffeur_OutstationFloor(t *testing.T) {
	tests := []struct {
		name         string
		days         int
		km           int
		wantBilledKm int
	}{
		{name: "short trip billed at floor", days: 2, km: 100, wantBilledKm: 600},
		{name: "exactly at floor", days: 1, km: 300, wantBilledKm: 300},
		{name: "longer trip billed at actual", days: 1, km: 450, wantBilledKm: 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceChauffeur(testChauffeurRate(), tt.days, 8, tt.km, AreaOutstation)
			if err != nil {
				t.Fatalf("PriceChauffeur() error = %v", err)
			}
			if got.BilledKm != tt.wantBilledKm {
				t.Errorf("BilledKm = %d, want %d", got.BilledKm, tt.wantBilledKm)
			}
			if !got.Outstation {
				t.Error("Outstation flag not set")
			}
		})
	}
}

func TestPriceChauffeur_OutstationTotals(t *testing.T) {
	// 600 km * 14 = 8400; DA = 2*500 = 1000; preTax = 9400; tax = 1128.
	got, err := PriceChauffeur(testChauffeurRate(), 2, 8, 100, AreaOutstation)
	if err != nil {
		t.Fatalf("PriceChauffeur() error = %v", err)
	}
	if !got.Subtotal.Equal(dec("8400")) {
		t.Errorf("Subtotal = %s, want 8400", got.Subtotal)
	}
	if !got.DriverAllowance.Equal(dec("1000")) {
		t.Errorf("DriverAllowance = %s, want 1000", got.DriverAllowance)
	}
	if !got.Tax.Equal(dec("1128")) {
		t.Errorf("Tax = %s, want 1128", got.Tax)
	}
	if !got.Total.Equal(dec("10528")) {
		t.Errorf("Total = %s, want 10528", got.Total)
	}
}

func TestPriceChauffeur_InvalidInput(t *testing.T) {
	rate := testChauffeurRate()

	if _, err := PriceChauffeur(rate, 0, 8, 100, AreaWithinCity); !errors.Is(err, ErrInvalidDays) {
		t.Errorf("days=0 error = %v, want ErrInvalidDays", err)
	}
	if _, err := PriceChauffeur(rate, 1, 8, -1, AreaWithinCity); !errors.Is(err, ErrInvalidDistance) {
		t.Errorf("km=-1 error = %v, want ErrInvalidDistance", err)
	}
	if _, err := PriceChauffeur(rate, 1, 7, 100, AreaWithinCity); !errors.Is(err, ErrInvalidHours) {
		t.Errorf("hours=7 error = %v, want ErrInvalidHours", err)
	}
	if _, err := PriceChauffeur(rate, 1, 8, 100, AreaUnknown); !errors.Is(err, ErrInvalidServiceArea) {
		t.Errorf("unknown area error = %v, want ErrInvalidServiceArea", err)
	}
}

func TestParseServiceArea(t *testing.T) {
	tests := []struct {
		in      string
		want    ServiceArea
		wantErr bool
	}{
		{in: "within_city", want: AreaWithinCity},
		{in: "adjacent_metro", want: AreaAdjacentMetro},
		{in: "outstation", want: AreaOutstation},
		{in: "", wantErr: true},
		{in: "moon", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseServiceArea(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidServiceArea) {
				t.Errorf("ParseServiceArea(%q) error = %v, want ErrInvalidServiceArea", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseServiceArea(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}
