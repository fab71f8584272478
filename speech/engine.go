package speech

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/castkit/castkit/internal/cache"
	"github.com/castkit/castkit/internal/metrics"
	"github.com/castkit/castkit/internal/storage"
)

// wordsPerMinute is the narration pace the duration estimate assumes at
// 1.0x speed.
const wordsPerMinute = 155.0

// AudioArtifact is what the audio cache stores per content hash: the
// hosted location plus the few facts a cached response needs.
type AudioArtifact struct {
	URL             string `json:"url"`
	SizeBytes       int64  `json:"size_bytes"`
	DurationSeconds int    `json:"duration_seconds"`
	Format          Format `json:"format"`
	Voice           string `json:"voice"`
}

// EngineStats is the combined view of request counters and the audio cache.
type EngineStats struct {
	Metrics      metrics.Stats
	CacheEntries int
	CacheHits    int64
	CacheHitRate float64
	CostSaved    float64
}

// Engine coordinates speech generation: validation, cost ceilings, the
// audio cache, provider dispatch, and artifact upload.
type Engine struct {
	cfg    Config
	blobs  storage.BlobStore
	logger *log.Logger

	mu        sync.Mutex
	providers map[string]Provider

	audioCache *cache.Store[AudioArtifact]
	agg        *metrics.Aggregator
	history    *metrics.History

	locks *keyedMutex
}

// NewEngine creates an engine from a validated configuration. Every known
// provider name starts bound to a NotImplementedProvider placeholder;
// working adapters are swapped in with RegisterProvider.
func NewEngine(cfg Config, blobs storage.BlobStore) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		blobs:      blobs,
		logger:     log.With("component", "speech-engine"),
		providers:  make(map[string]Provider),
		audioCache: cache.NewStore[AudioArtifact](cfg.CacheTTL()),
		agg:        metrics.NewAggregator(),
		history:    metrics.NewHistory(metrics.DefaultHistoryCapacity),
		locks:      newKeyedMutex(),
	}

	for _, name := range ProviderNames() {
		e.providers[name] = NotImplementedProvider{ProviderName: name}
	}

	// An evicted entry's blob is orphaned otherwise. Deletion is best
	// effort; the bucket outlives a failed cleanup.
	e.audioCache.SetEvictionHook(func(entry cache.Entry[AudioArtifact]) {
		if e.blobs == nil || entry.Payload.URL == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.blobs.Delete(ctx, entry.Payload.URL); err != nil {
			e.logger.Warn("failed to delete evicted audio blob",
				"url", entry.Payload.URL, "error", err)
		}
	})

	return e, nil
}

// RegisterProvider binds a working provider adapter, replacing the
// placeholder (or a previous adapter) under the same name.
func (e *Engine) RegisterProvider(p Provider) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.providers[p.Name()] = p
}

func (e *Engine) provider(name string) (Provider, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.providers[name]
	return p, ok
}

// GenerateAudio synthesizes speech for the request, serving from the
// audio cache when possible. Validation and cost-ceiling failures leave
// no trace in metrics or history; provider and storage failures are
// recorded as failed requests.
func (e *Engine) GenerateAudio(ctx context.Context, req Request) (*Result, error) {
	req = e.withDefaults(req)

	provider, err := e.validate(req)
	if err != nil {
		return nil, err
	}

	estimated := estimateCost(req.Text, provider.Capabilities(), req.Quality)
	if err := e.checkCeilings(estimated); err != nil {
		return nil, err
	}

	hash := cache.AudioKey(req.Text, req.Voice, req.Provider,
		string(req.Format), string(req.Quality), req.Speed, req.Pitch)

	if !e.cfg.EnableCaching {
		return e.synthesize(ctx, provider, req, hash, estimated)
	}

	// Serialize concurrent requests for the same hash so only the first
	// pays for synthesis; the rest hit the entry it cached.
	unlock := e.locks.lock(hash)
	defer unlock()

	if entry, ok := e.audioCache.Get(hash); ok {
		e.logger.Debug("audio cache hit", "hash", hash, "access_count", entry.AccessCount)
		return &Result{
			AudioURL:        entry.Payload.URL,
			SizeBytes:       entry.Payload.SizeBytes,
			DurationSeconds: entry.Payload.DurationSeconds,
			Format:          entry.Payload.Format,
			Quality:         Quality(entry.Metadata.Quality),
			Voice:           entry.Payload.Voice,
			Provider:        entry.Metadata.Provider,
			Cost:            0,
			ProcessingTime:  0,
			ContentHash:     hash,
			Cached:          true,
		}, nil
	}

	return e.synthesize(ctx, provider, req, hash, estimated)
}

func (e *Engine) synthesize(ctx context.Context, provider Provider, req Request, hash string, cost float64) (*Result, error) {
	start := time.Now()

	audio, err := provider.Synthesize(ctx, req.Text, SynthesisOptions{
		Voice:   req.Voice,
		Format:  req.Format,
		Quality: req.Quality,
		Speed:   req.Speed,
		Pitch:   req.Pitch,
	})
	if err != nil {
		speechErr, ok := AsError(err)
		if !ok {
			speechErr = NewError(CodeAPIError, "synthesis failed").
				WithProvider(req.Provider).WithCause(err)
		}
		e.recordFailure(req, speechErr)
		return nil, speechErr
	}

	key := fmt.Sprintf("audio/%s.%s", hash, req.Format)
	url, err := e.blobs.Put(ctx, key, audio, storage.ContentTypeForFormat(string(req.Format)))
	if err != nil {
		speechErr := NewError(CodeStorageError, "failed to store audio artifact").
			WithProvider(req.Provider).WithCause(err)
		e.recordFailure(req, speechErr)
		return nil, speechErr
	}

	duration := estimateDuration(req.Text, req.Speed)
	elapsed := time.Since(start)

	artifact := AudioArtifact{
		URL:             url,
		SizeBytes:       int64(len(audio)),
		DurationSeconds: duration,
		Format:          req.Format,
		Voice:           req.Voice,
	}

	if e.cfg.EnableCaching {
		e.audioCache.Put(hash, artifact, cache.Metadata{
			Provider: req.Provider,
			Cost:     cost,
			Quality:  string(req.Quality),
		})
	}

	e.history.Append(metrics.Record{
		Provider:        req.Provider,
		Voice:           req.Voice,
		TextLength:      len(req.Text),
		Success:         true,
		Cost:            cost,
		DurationSeconds: duration,
	})
	e.agg.RecordSuccess(metrics.Sample{
		Provider:        req.Provider,
		Voice:           req.Voice,
		Quality:         string(req.Quality),
		Format:          string(req.Format),
		Cost:            cost,
		DurationSeconds: float64(duration),
		SizeBytes:       int64(len(audio)),
		ProcessingMs:    float64(elapsed.Milliseconds()),
	})

	e.logger.Info("audio generated",
		"provider", req.Provider,
		"voice", req.Voice,
		"bytes", len(audio),
		"duration_s", duration,
		"cost", cost)

	return &Result{
		AudioURL:        url,
		SizeBytes:       int64(len(audio)),
		DurationSeconds: duration,
		Format:          req.Format,
		Quality:         req.Quality,
		Voice:           req.Voice,
		Provider:        req.Provider,
		Cost:            cost,
		ProcessingTime:  elapsed,
		ContentHash:     hash,
		Cached:          false,
	}, nil
}

// withDefaults fills zero-valued request fields from the configuration.
func (e *Engine) withDefaults(req Request) Request {
	if req.Voice == "" {
		req.Voice = e.cfg.DefaultVoice
	}
	if req.Provider == "" {
		req.Provider = e.cfg.Provider
	}
	if req.Format == "" {
		req.Format = e.cfg.DefaultFormat
	}
	if req.Quality == "" {
		req.Quality = e.cfg.DefaultQuality
	}
	if req.Speed == 0 {
		req.Speed = e.cfg.DefaultSpeed
	}
	return req
}

// validate rejects malformed requests before any money is at stake.
func (e *Engine) validate(req Request) (Provider, error) {
	provider, ok := e.provider(req.Provider)
	if !ok {
		return nil, NewError(CodeInvalidInput, "unknown provider '"+req.Provider+"'").
			WithCause(ErrUnknownProvider)
	}

	if strings.TrimSpace(req.Text) == "" {
		return nil, NewError(CodeInvalidInput, "text cannot be empty").
			WithCause(ErrEmptyText)
	}

	caps := provider.Capabilities()
	if caps.MaxTextLength > 0 && len(req.Text) > caps.MaxTextLength {
		return nil, NewError(CodeInvalidInput,
			fmt.Sprintf("text length %d exceeds provider limit %d", len(req.Text), caps.MaxTextLength)).
			WithProvider(req.Provider).WithCause(ErrTextTooLong)
	}

	if req.Speed < SpeedMin || req.Speed > SpeedMax {
		return nil, NewError(CodeInvalidInput,
			fmt.Sprintf("speed %.2f out of range [%.2f, %.1f]", req.Speed, SpeedMin, SpeedMax)).
			WithCause(ErrSpeedOutOfRange)
	}

	voice, found := LookupVoice(req.Voice)
	if !found {
		return nil, NewError(CodeInvalidInput, "voice '"+req.Voice+"' not found").
			WithCause(ErrUnknownVoice)
	}
	if !voice.Available {
		return nil, NewError(CodeInvalidInput, "voice '"+req.Voice+"' is not available").
			WithCause(ErrVoiceUnavailable)
	}

	if !req.Format.Valid() {
		return nil, NewError(CodeInvalidInput, "invalid format '"+string(req.Format)+"'")
	}
	if len(caps.SupportedFormats) > 0 && !formatSupported(caps.SupportedFormats, req.Format) {
		return nil, NewError(CodeInvalidInput,
			fmt.Sprintf("provider %s does not support format '%s'", req.Provider, req.Format)).
			WithProvider(req.Provider)
	}
	if !req.Quality.Valid() {
		return nil, NewError(CodeInvalidInput, "invalid quality '"+string(req.Quality)+"'")
	}

	return provider, nil
}

func formatSupported(formats []Format, f Format) bool {
	for _, supported := range formats {
		if supported == f {
			return true
		}
	}
	return false
}

// checkCeilings enforces the per-request and daily spend limits against
// the estimated cost, before the provider is called.
func (e *Engine) checkCeilings(estimated float64) error {
	if estimated > e.cfg.CostLimits.PerRequestLimit {
		return NewError(CodeCostLimitExceeded,
			fmt.Sprintf("estimated cost $%.4f exceeds per-request limit $%.2f",
				estimated, e.cfg.CostLimits.PerRequestLimit))
	}
	if e.agg.CostLast24h()+estimated > e.cfg.CostLimits.DailyLimit {
		return NewError(CodeCostLimitExceeded,
			fmt.Sprintf("estimated cost $%.4f would exceed daily limit $%.2f",
				estimated, e.cfg.CostLimits.DailyLimit))
	}
	return nil
}

func (e *Engine) recordFailure(req Request, speechErr *Error) {
	e.history.Append(metrics.Record{
		Provider:   req.Provider,
		Voice:      req.Voice,
		TextLength: len(req.Text),
		Success:    false,
		Error:      speechErr.Error(),
	})
	e.agg.RecordFailure()
	e.logger.Error("audio generation failed",
		"provider", req.Provider, "code", speechErr.Code, "error", speechErr)
}

// estimateCost prices a synthesis call from the provider's per-1K-character
// rate for the requested quality tier.
func estimateCost(text string, caps Capabilities, quality Quality) float64 {
	return float64(len(text)) / 1000 * caps.Rate(quality)
}

// estimateDuration predicts the narrated length in whole seconds, rounding
// up so a short text never reports zero.
func estimateDuration(text string, speed float64) int {
	words := float64(len(strings.Fields(text)))
	if words == 0 {
		return 0
	}
	minutes := words / wordsPerMinute / speed
	return int(math.Ceil(minutes * 60))
}

// Stats returns the combined request and cache counters. The hit rate
// counts cached responses against all answered requests; cache hits never
// reach the aggregator, so they are added back here.
func (e *Engine) Stats() EngineStats {
	hits := e.audioCache.Hits()
	total := e.agg.TotalRequests() + hits

	var rate float64
	if total > 0 {
		rate = float64(hits) / float64(total)
	}

	var saved float64
	snapshot := e.agg.Snapshot()
	if snapshot.SuccessCount > 0 {
		saved = float64(hits) * (snapshot.TotalCost / float64(snapshot.SuccessCount))
	}

	return EngineStats{
		Metrics:      snapshot,
		CacheEntries: e.audioCache.Len(),
		CacheHits:    hits,
		CacheHitRate: rate,
		CostSaved:    saved,
	}
}

// History returns the bounded audit trail.
func (e *Engine) History() *metrics.History {
	return e.history
}

// AudioCache exposes the underlying store for persistence wiring and tests.
func (e *Engine) AudioCache() *cache.Store[AudioArtifact] {
	return e.audioCache
}

// Close flushes the audio cache to its persistence backend, if one is set.
func (e *Engine) Close() error {
	return e.audioCache.Flush()
}

// keyedMutex serializes callers per key, with refcounting so idle keys
// do not accumulate.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
