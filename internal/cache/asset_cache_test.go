package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storybook-server/internal/models"
)

func TestKey_Deterministic(t *testing.T) {
	img := []byte("fake-jpeg-bytes")

	k1 := Key(img, "Maya", "Once upon a time", models.StyleGhibli, "standard", "1024x1024")
	k2 := Key(img, "Maya", "Once upon a time", models.StyleGhibli, "standard", "1024x1024")
	assert.Equal(t, k1, k2, "одинаковые входы должны давать одинаковый ключ")
}

func TestKey_DistinguishesInputs(t *testing.T) {
	img := []byte("fake-jpeg-bytes")
	base := Key(img, "Maya", "paragraph", models.StyleGhibli, "standard", "1024x1024")

	assert.NotEqual(t, base, Key([]byte("other-bytes"), "Maya", "paragraph", models.StyleGhibli, "standard", "1024x1024"))
	assert.NotEqual(t, base, Key(img, "Alex", "paragraph", models.StyleGhibli, "standard", "1024x1024"))
	assert.NotEqual(t, base, Key(img, "Maya", "another paragraph", models.StyleGhibli, "standard", "1024x1024"))
	assert.NotEqual(t, base, Key(img, "Maya", "paragraph", models.StylePixar, "standard", "1024x1024"))
	assert.NotEqual(t, base, Key(img, "Maya", "paragraph", models.StyleGhibli, "hd", "1024x1024"))
	assert.NotEqual(t, base, Key(img, "Maya", "paragraph", models.StyleGhibli, "standard", "1792x1024"))
}

// Разделитель полей - нулевой байт: конкатенация соседних полей не должна
// давать тот же ключ.
func TestKey_NoConcatenationCollisions(t *testing.T) {
	img := []byte("img")
	k1 := Key(img, "ab", "c", models.StyleGhibli, "standard", "1024x1024")
	k2 := Key(img, "a", "bc", models.StyleGhibli, "standard", "1024x1024")
	assert.NotEqual(t, k1, k2)
}

// В ключе участвует только стабильный префикс изображения: байты за его
// пределами ключ не меняют.
func TestKey_SamplePrefixOnly(t *testing.T) {
	big1 := make([]byte, keySamplePrefix+100)
	big2 := make([]byte, keySamplePrefix+100)
	copy(big1, big2)
	big2[keySamplePrefix+50] = 0xFF

	k1 := Key(big1, "Maya", "p", models.StyleGhibli, "standard", "1024x1024")
	k2 := Key(big2, "Maya", "p", models.StyleGhibli, "standard", "1024x1024")
	assert.Equal(t, k1, k2, "байты за пределами префикса не должны влиять на ключ")

	big2[10] = 0xFF
	k3 := Key(big2, "Maya", "p", models.StyleGhibli, "standard", "1024x1024")
	assert.NotEqual(t, k1, k3, "байты внутри префикса должны влиять на ключ")
}

func TestAssetCache_SetGet(t *testing.T) {
	c := New(time.Minute, time.Minute)
	asset := models.IllustrationAsset{
		SecureURL: "https://cdn.example.com/img.jpg",
		PublicID:  "storybook/img",
		Style:     models.StyleGhibli,
	}

	key := Key([]byte("img"), "Maya", "p", models.StyleGhibli, "standard", "1024x1024")

	_, ok := c.Get(key)
	require.False(t, ok, "пустой кэш не должен отдавать записи")

	c.Set(key, asset)
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, asset, got)
}

// Просроченная запись считается отсутствующей при чтении, даже если фоновая
// очистка еще не успела ее убрать.
func TestAssetCache_ExpiredEntryIsMiss(t *testing.T) {
	c := New(10*time.Millisecond, time.Hour)

	key := "k"
	c.Set(key, models.IllustrationAsset{SecureURL: "https://x"})

	_, ok := c.Get(key)
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get(key)
	assert.False(t, ok, "просроченная запись должна быть промахом независимо от sweep-интервала")
}
