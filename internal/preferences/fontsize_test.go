package preferences

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/entities"
)

func TestFontSizeStore_SetSize(t *testing.T) {
	tests := []struct {
		name    string
		size    float64
		wantErr bool
	}{
		{name: "minimum", size: MinFontSize},
		{name: "maximum", size: MaxFontSize},
		{name: "fractional", size: 17.5},
		{name: "too small", size: 7, wantErr: true},
		{name: "too large", size: 65, wantErr: true},
		{name: "NaN", size: math.NaN(), wantErr: true},
		{name: "infinity", size: math.Inf(1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewFontSizeStore(newMemoryKV(nil), zap.NewNop())
			defer store.Close()

			err := store.SetSize(tt.size)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFontSize)
				assert.Equal(t, DefaultFontSize, store.Size())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, store.Size())
		})
	}
}

func TestFontSizeStore_LoadRejectsOutOfRange(t *testing.T) {
	for _, stored := range []string{"400", "NaN", "+Inf", "-Inf"} {
		t.Run(stored, func(t *testing.T) {
			store := NewFontSizeStore(newMemoryKV(map[string]string{entities.SettingKeyFontSize: stored}), zap.NewNop())
			defer store.Close()

			store.Load(context.Background())

			assert.Equal(t, DefaultFontSize, store.Size())
		})
	}
}

func TestFontSizeStore_Scaled(t *testing.T) {
	store := NewFontSizeStore(newMemoryKV(nil), zap.NewNop())
	defer store.Close()
	require.NoError(t, store.SetSize(20))

	assert.InDelta(t, 17.0, store.Scaled(RoleCaption), 0.001)
	assert.InDelta(t, 20.0, store.Scaled(RoleBody), 0.001)
	assert.InDelta(t, 30.0, store.Scaled(RoleArabic), 0.001)
	assert.InDelta(t, 40.0, store.Scaled(RoleDisplay), 0.001)
	assert.InDelta(t, 20.0, store.Scaled("unknown"), 0.001)
}

func TestFontSizeStore_ScaledSizes(t *testing.T) {
	store := NewFontSizeStore(newMemoryKV(nil), zap.NewNop())
	defer store.Close()

	sizes := store.ScaledSizes()

	assert.Len(t, sizes, 7)
	assert.InDelta(t, 24.0, sizes[RoleArabic], 0.001)
	assert.InDelta(t, 28.0, sizes[RoleTitle], 0.001)
}
