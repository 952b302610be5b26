package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики пайплайна иллюстраций и генерации историй.
var (
	storiesGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storybook_stories_generated_total",
		Help: "Total number of successfully generated and persisted stories.",
	})
	generationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storybook_generation_failures_total",
		Help: "Total number of failed story generations by stage.",
	}, []string{"stage"})
	quotaDenialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storybook_quota_denials_total",
		Help: "Total number of story generations denied by the quota gate.",
	}, []string{"tier"})
	illustrationCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storybook_illustration_cache_hits_total",
		Help: "Total number of illustration cache hits.",
	})
	illustrationCacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storybook_illustration_cache_misses_total",
		Help: "Total number of illustration cache misses.",
	})
	uploadRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storybook_upload_retries_total",
		Help: "Total number of failed illustration upload attempts.",
	})
)
