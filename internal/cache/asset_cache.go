package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"storybook-server/internal/models"
)

// keySamplePrefix - сколько байт изображения участвует в ключе кэша.
// Полное изображение хэшировать незачем: первые 4 KiB вместе с именем,
// абзацем и параметрами генерации достаточно различают запросы.
const keySamplePrefix = 4096

// AssetCache - контентно-адресуемый кэш иллюстраций с TTL.
// Чистая оптимизация: промах обязан давать результат той же формы, что и
// попадание. Потокобезопасность обеспечивает go-cache.
type AssetCache struct {
	c *gocache.Cache
}

// New создает кэш с заданными TTL и интервалом фоновой очистки.
// Просроченная запись считается отсутствующей уже при чтении, независимо
// от того, успел ли ее убрать фоновый проход.
func New(ttl, sweepInterval time.Duration) *AssetCache {
	return &AssetCache{c: gocache.New(ttl, sweepInterval)}
}

// Key строит детерминированный ключ по входам одного вызова пайплайна.
// Поля разделяются нулевым байтом, чтобы конкатенация не давала коллизий.
func Key(imageData []byte, characterName, paragraph string, style models.IllustrationStyle, quality, size string) string {
	h := sha256.New()
	sample := imageData
	if len(sample) > keySamplePrefix {
		sample = sample[:keySamplePrefix]
	}
	h.Write(sample)
	for _, field := range []string{characterName, paragraph, string(style), quality, size} {
		h.Write([]byte{0})
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get возвращает неистекшую запись по ключу.
func (a *AssetCache) Get(key string) (models.IllustrationAsset, bool) {
	v, ok := a.c.Get(key)
	if !ok {
		return models.IllustrationAsset{}, false
	}
	asset, ok := v.(models.IllustrationAsset)
	return asset, ok
}

// Set кладет запись под ключом со стандартным TTL кэша.
func (a *AssetCache) Set(key string, asset models.IllustrationAsset) {
	a.c.Set(key, asset, gocache.DefaultExpiration)
}
