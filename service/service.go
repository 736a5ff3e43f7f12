package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/morsafarhq/morsafar/cockroach"
	"github.com/morsafarhq/morsafar/pubsub"
)

type Config struct {
	Cockroach         *cockroach.Cockroach
	PubSub            pubsub.PubSub
	BaseCtx           context.Context
	BackgroundTimeout time.Duration
	CodeCacheSize     int
	CodeCacheTTL      time.Duration
}

type Service struct {
	Cockroach *cockroach.Cockroach
	PubSub    pubsub.PubSub

	codeOwners        *lru.LRU[string, string]
	baseCtx           context.Context
	backgroundTimeout time.Duration
	wg                sync.WaitGroup
	closeOnce         sync.Once
	errs              chan error
}

func New(cfg *Config) *Service {
	cacheSize := cfg.CodeCacheSize
	if cacheSize <= 0 {
		cacheSize = 1024
	}
	cacheTTL := cfg.CodeCacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}

	return &Service{
		Cockroach: cfg.Cockroach,
		PubSub:    cfg.PubSub,

		codeOwners:        lru.NewLRU[string, string](cacheSize, nil, cacheTTL),
		baseCtx:           cfg.BaseCtx,
		backgroundTimeout: cfg.BackgroundTimeout,
		errs:              make(chan error, 1),
	}
}

// Errs reports failures of asynchronous work (notification dispatch,
// fan-out refetches) that never surface to the triggering caller.
func (s *Service) Errs() <-chan error {
	return s.errs
}

// Close waits for every background worker and open stream to finish,
// then closes the error channel. Callers must have cancelled stream
// contexts first or Close blocks on them.
func (s *Service) Close() error {
	s.closeOnce.Do(func() {
		s.wg.Wait()
		close(s.errs)
	})
	return nil
}

func (s *Service) background(fn func(ctx context.Context) error) {
	s.wg.Go(func() {
		defer func() {
			if rcv := recover(); rcv != nil {
				s.reportErr(fmt.Errorf("service background panic: %v", rcv))
			}
		}()

		ctx, cancel := context.WithTimeout(s.baseCtx, s.backgroundTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			s.reportErr(fmt.Errorf("service background error: %w", err))
		}
	})
}

func (s *Service) reportErr(err error) {
	select {
	case s.errs <- err:
	default:
	}
}
