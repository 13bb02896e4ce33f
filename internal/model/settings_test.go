package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettings_BeforeSave(t *testing.T) {
	settings := &Settings{ID: 42}
	assert.NoError(t, settings.BeforeSave(nil))
	assert.Equal(t, uint(SettingsID), settings.ID)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name           string
		orderCutoff    string
		menuVisibility string
		wantErr        bool
	}{
		{name: "defaults", orderCutoff: "20:00", menuVisibility: "06:00"},
		{name: "edge of day", orderCutoff: "23:59", menuVisibility: "00:00"},
		{name: "single digit hour is accepted", orderCutoff: "20:00", menuVisibility: "6:00"},
		{name: "truncated minutes", orderCutoff: "20:0", menuVisibility: "06:00", wantErr: true},
		{name: "not a clock", orderCutoff: "noon", menuVisibility: "06:00", wantErr: true},
		{name: "hour out of range", orderCutoff: "24:00", menuVisibility: "06:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &Settings{OrderCutoff: tt.orderCutoff, MenuVisibility: tt.menuVisibility}
			err := settings.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSettings_Instants(t *testing.T) {
	settings := &Settings{OrderCutoff: "20:00", MenuVisibility: "06:00"}
	mealDate := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	visibility, err := settings.VisibilityInstant(mealDate, time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 9, 6, 0, 0, 0, time.UTC), visibility)

	cutoff, err := settings.CutoffInstant(mealDate, time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 9, 20, 0, 0, 0, time.UTC), cutoff)
}

func TestSettings_Instants_RejectBadClock(t *testing.T) {
	settings := &Settings{OrderCutoff: "late", MenuVisibility: "06:00"}
	_, err := settings.CutoffInstant(time.Now(), time.UTC)
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.June, 10, 13, 45, 12, 999, time.FixedZone("CEST", 2*3600))
	got := DateOnly(in)
	assert.Equal(t, time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), got)
}
