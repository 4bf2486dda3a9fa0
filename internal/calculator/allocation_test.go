package calculator

import (
	"errors"
	"math"
	"testing"
)

func sampleUnits() []Unit {
	return []Unit{
		{ID: "U1", Area: 50, Coefficient: 1.0, ResidentsCount: 2},
		{ID: "U2", Area: 100, Coefficient: 1.5, ResidentsCount: 3},
		{ID: "U3", Area: 50, Coefficient: 1.0, ResidentsCount: 1},
	}
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		items        []Item
		units        []Unit
		wantErr      bool
		validateFunc func(t *testing.T, a *Allocation)
	}{
		{
			name:  "area split of one million across three units",
			items: []Item{{ID: "elevator", Amount: 1_000_000, Method: MethodArea}},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				// totalArea = 200 → 250k, 500k, 250k
				want := []float64{250_000, 500_000, 250_000}
				for i, w := range want {
					if math.Abs(a.Units[i].Raw-w) > 0.0001 {
						t.Errorf("%s raw = %v, want %v", a.Units[i].UnitID, a.Units[i].Raw, w)
					}
					if a.Units[i].Total != int64(w) {
						t.Errorf("%s total = %d, want %d", a.Units[i].UnitID, a.Units[i].Total, int64(w))
					}
				}
				if a.OverCollection() != 0 {
					t.Errorf("over-collection = %d, want 0", a.OverCollection())
				}
			},
		},
		{
			name:  "equal split gives every unit the same share",
			items: []Item{{ID: "cleaning", Amount: 900_000, Method: MethodEqual}},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				for _, u := range a.Units {
					if u.Shares[0].Amount != 300_000 {
						t.Errorf("%s share = %v, want 300000", u.UnitID, u.Shares[0].Amount)
					}
				}
			},
		},
		{
			name:  "equal split rounds every unit up",
			items: []Item{{ID: "water", Amount: 1_000_000, Method: MethodEqual}},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				// 333333.33 each, ceiling → 333334; three units over-collect by 2
				for _, u := range a.Units {
					if u.Total != 333_334 {
						t.Errorf("%s total = %d, want 333334", u.UnitID, u.Total)
					}
				}
				if a.Total != 1_000_002 {
					t.Errorf("allocation total = %d, want 1000002", a.Total)
				}
				if a.OverCollection() != 2 {
					t.Errorf("over-collection = %d, want 2", a.OverCollection())
				}
			},
		},
		{
			name:  "coefficient split",
			items: []Item{{ID: "reserve", Amount: 700_000, Method: MethodCoefficient}},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				// totalCoefficient = 3.5 → 200k, 300k, 200k
				want := []int64{200_000, 300_000, 200_000}
				for i, w := range want {
					if a.Units[i].Total != w {
						t.Errorf("%s total = %d, want %d", a.Units[i].UnitID, a.Units[i].Total, w)
					}
				}
			},
		},
		{
			name:  "residents split",
			items: []Item{{ID: "gas", Amount: 600_000, Method: MethodResidents}},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				// totalResidents = 6 → 200k, 300k, 100k
				want := []int64{200_000, 300_000, 100_000}
				for i, w := range want {
					if a.Units[i].Total != w {
						t.Errorf("%s total = %d, want %d", a.Units[i].UnitID, a.Units[i].Total, w)
					}
				}
			},
		},
		{
			name:  "custom falls back to equal",
			items: []Item{{ID: "misc", Amount: 300_000, Method: MethodCustom}},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				for _, u := range a.Units {
					if u.Total != 100_000 {
						t.Errorf("%s total = %d, want 100000", u.UnitID, u.Total)
					}
				}
			},
		},
		{
			name: "multiple items accumulate per unit",
			items: []Item{
				{ID: "elevator", Amount: 1_000_000, Method: MethodArea},
				{ID: "cleaning", Amount: 900_000, Method: MethodEqual},
			},
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				want := []int64{550_000, 800_000, 550_000}
				for i, w := range want {
					if a.Units[i].Total != w {
						t.Errorf("%s total = %d, want %d", a.Units[i].UnitID, a.Units[i].Total, w)
					}
					if len(a.Units[i].Shares) != 2 {
						t.Errorf("%s shares = %d, want 2", a.Units[i].UnitID, len(a.Units[i].Shares))
					}
				}
				if a.ItemsTotal != 1_900_000 {
					t.Errorf("items total = %d, want 1900000", a.ItemsTotal)
				}
			},
		},
		{
			name: "zero amount item is skipped even with zero basis",
			items: []Item{
				{ID: "free", Amount: 0, Method: MethodResidents},
				{ID: "cleaning", Amount: 300_000, Method: MethodEqual},
			},
			units: []Unit{
				{ID: "A", Area: 40, Coefficient: 1},
				{ID: "B", Area: 60, Coefficient: 1},
			},
			validateFunc: func(t *testing.T, a *Allocation) {
				for _, u := range a.Units {
					if u.Total != 150_000 {
						t.Errorf("%s total = %d, want 150000", u.UnitID, u.Total)
					}
					if len(u.Shares) != 1 {
						t.Errorf("%s shares = %d, want 1", u.UnitID, len(u.Shares))
					}
				}
			},
		},
		{
			name:    "zero residents basis should error",
			items:   []Item{{ID: "gas", Amount: 100, Method: MethodResidents}},
			units:   []Unit{{ID: "A", Area: 40, Coefficient: 1}},
			wantErr: true,
		},
		{
			name:    "no units should error",
			items:   []Item{{ID: "gas", Amount: 100, Method: MethodEqual}},
			units:   []Unit{},
			wantErr: true,
		},
		{
			name:  "no items allocates nothing",
			items: nil,
			units: sampleUnits(),
			validateFunc: func(t *testing.T, a *Allocation) {
				if a.Total != 0 {
					t.Errorf("total = %d, want 0", a.Total)
				}
				if len(a.Units) != 3 {
					t.Errorf("units = %d, want 3", len(a.Units))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Allocate(tt.items, tt.units)
			if (err != nil) != tt.wantErr {
				t.Errorf("Allocate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, a)
			}
		})
	}
}

func TestAllocateZeroBasisNamesMethod(t *testing.T) {
	units := []Unit{{ID: "A", Coefficient: 1}, {ID: "B", Coefficient: 1}}
	_, err := Allocate([]Item{{ID: "x", Amount: 1000, Method: MethodArea}}, units)

	var zb *ZeroBasisError
	if !errors.As(err, &zb) {
		t.Fatalf("expected ZeroBasisError, got %v", err)
	}
	if zb.Method != MethodArea {
		t.Errorf("method = %s, want area", zb.Method)
	}
	if zb.Basis != "totalArea" || zb.Total != 0 {
		t.Errorf("basis = %s (%g), want totalArea (0)", zb.Basis, zb.Total)
	}
	if want := "cannot divide by area: totalArea of all units is 0"; zb.Error() != want {
		t.Errorf("error = %q, want %q", zb.Error(), want)
	}

	_, err = Allocate([]Item{{ID: "y", Amount: 1000, Method: MethodResidents}}, units)
	if !errors.As(err, &zb) || zb.Basis != "totalResidents" {
		t.Errorf("expected totalResidents basis, got %v", err)
	}

	_, err = Allocate(nil, nil)
	if !errors.Is(err, ErrNoUnits) {
		t.Errorf("expected ErrNoUnits, got %v", err)
	}
}

func TestAllocateAreaProportionality(t *testing.T) {
	units := []Unit{
		{ID: "A", Area: 73.5, Coefficient: 1},
		{ID: "B", Area: 121.25, Coefficient: 1},
		{ID: "C", Area: 48, Coefficient: 1},
		{ID: "D", Area: 210, Coefficient: 1},
	}
	a, err := Allocate([]Item{{ID: "x", Amount: 4_321_987, Method: MethodArea}}, units)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}

	for i := range units {
		for j := range units {
			got := a.Units[i].Raw / a.Units[j].Raw
			want := units[i].Area / units[j].Area
			if math.Abs(got-want) > 1e-9 {
				t.Errorf("share(%s)/share(%s) = %v, want %v", units[i].ID, units[j].ID, got, want)
			}
		}
	}
}

func TestAllocateRawSharesReconstructAmount(t *testing.T) {
	units := []Unit{
		{ID: "A", Area: 73.5, Coefficient: 0.8, ResidentsCount: 4},
		{ID: "B", Area: 121.25, Coefficient: 1.3, ResidentsCount: 1},
		{ID: "C", Area: 48, Coefficient: 1, ResidentsCount: 2},
	}
	for _, method := range []Method{MethodEqual, MethodArea, MethodCoefficient, MethodResidents, MethodCustom} {
		t.Run(string(method), func(t *testing.T) {
			a, err := Allocate([]Item{{ID: "x", Amount: 1_234_567, Method: method}}, units)
			if err != nil {
				t.Fatalf("Allocate failed: %v", err)
			}
			var sum float64
			for _, u := range a.Units {
				sum += u.Shares[0].Amount
			}
			if math.Abs(sum-1_234_567) > 0.001 {
				t.Errorf("sum of shares = %v, want 1234567", sum)
			}
			if over := a.OverCollection(); over < 0 || over > int64(len(units)-1) {
				t.Errorf("over-collection = %d, want within [0, %d]", over, len(units)-1)
			}
		})
	}
}

func TestAllocateSingleUnitTakesEverything(t *testing.T) {
	units := []Unit{{ID: "only", Area: 87.3, Coefficient: 1.7, ResidentsCount: 3}}
	for _, method := range []Method{MethodEqual, MethodArea, MethodCoefficient, MethodResidents, MethodCustom} {
		a, err := Allocate([]Item{{ID: "x", Amount: 555_555, Method: method}}, units)
		if err != nil {
			t.Fatalf("%s: Allocate failed: %v", method, err)
		}
		if a.Units[0].Total != 555_555 {
			t.Errorf("%s: total = %d, want 555555", method, a.Units[0].Total)
		}
	}
}

func TestAllocateIsDeterministic(t *testing.T) {
	items := []Item{
		{ID: "a", Amount: 1_000_001, Method: MethodArea},
		{ID: "b", Amount: 333_333, Method: MethodResidents},
	}
	first, err := Allocate(items, sampleUnits())
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	second, err := Allocate(items, sampleUnits())
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	for i := range first.Units {
		if first.Units[i].Total != second.Units[i].Total || first.Units[i].Raw != second.Units[i].Raw {
			t.Errorf("unit %d differs between runs", i)
		}
	}
}
