package service

import (
	"context"
	"testing"

	"rentwheels/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeVehicleRepo struct {
	vehicles map[string]*model.Vehicle
}

func (f *fakeVehicleRepo) Create(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (f *fakeVehicleRepo) Update(ctx context.Context, vehicle *model.Vehicle) error { return nil }
func (f *fakeVehicleRepo) Delete(ctx context.Context, slug string) error            { return nil }

func (f *fakeVehicleRepo) GetBySlug(ctx context.Context, slug string) (*model.Vehicle, error) {
	v, ok := f.vehicles[slug]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (f *fakeVehicleRepo) List(ctx context.Context, activeOnly bool, page, limit int) ([]model.Vehicle, int64, error) {
	return nil, 0, nil
}

func selfDriveCardRequest() CreateRateCardRequest {
	return CreateRateCardRequest{
		Variant:     model.RateVariantSelfDrive,
		Km150Rate:   "2000",
		Km250Rate:   "2800",
		Km600Rate:   "4500",
		Deposit:     "5000",
		ExtraKmRate: "10",
		ExtraHrRate: "150",
	}
}

func TestCreateRateCard(t *testing.T) {
	ctx := context.Background()

	newFixture := func(cards map[string]*model.RateCard) (VehicleService, *recordingAuditRepo) {
		audit := &recordingAuditRepo{}
		vehicles := &fakeVehicleRepo{vehicles: map[string]*model.Vehicle{
			"swift": {Slug: "swift", Name: "Maruti Swift", Seats: 5, Category: "hatchback", Active: true},
		}}
		rates := &fakeRateCardRepo{cards: cards}
		svc := NewVehicleService(vehicles, rates, &fakeInventoryRepo{}, audit, stubTxManager{})
		return svc, audit
	}

	auditActions := func(audit *recordingAuditRepo) []string {
		actions := make([]string, 0, len(audit.entries))
		for _, e := range audit.entries {
			actions = append(actions, e.Action)
		}
		return actions
	}

	t.Run("first card for a variant audits only the creation", func(t *testing.T) {
		svc, audit := newFixture(map[string]*model.RateCard{})

		if _, err := svc.CreateRateCard(ctx, "", "swift", selfDriveCardRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := auditActions(audit)
		if len(got) != 1 || got[0] != model.ActionCreateRateCard {
			t.Errorf("audit actions = %v, want [%s]", got, model.ActionCreateRateCard)
		}
	})

	t.Run("replacing an active card audits the retirement too", func(t *testing.T) {
		prev := &model.RateCard{
			ID:          uuid.New(),
			VehicleSlug: "swift",
			Variant:     model.RateVariantSelfDrive,
			Active:      true,
		}
		svc, audit := newFixture(map[string]*model.RateCard{
			"swift/" + model.RateVariantSelfDrive: prev,
		})

		if _, err := svc.CreateRateCard(ctx, "", "swift", selfDriveCardRequest()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := auditActions(audit)
		want := []string{model.ActionRetireRateCard, model.ActionCreateRateCard}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Fatalf("audit actions = %v, want %v", got, want)
		}
		if audit.entries[0].EntityID != prev.ID.String() {
			t.Errorf("retire entry targets %q, want the retired card %q", audit.entries[0].EntityID, prev.ID)
		}
	})

	t.Run("unknown vehicle is rejected", func(t *testing.T) {
		svc, audit := newFixture(map[string]*model.RateCard{})

		if _, err := svc.CreateRateCard(ctx, "", "thar", selfDriveCardRequest()); err == nil {
			t.Fatal("expected an error for an unknown vehicle")
		}
		if len(audit.entries) != 0 {
			t.Errorf("audit entries = %v, want none", auditActions(audit))
		}
	})
}
