package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/bodypath/internal/config"
	"github.com/abhisek/bodypath/internal/curriculum"
	"github.com/abhisek/bodypath/internal/identity"
	"github.com/abhisek/bodypath/internal/logger"
	"github.com/abhisek/bodypath/internal/notify"
	"github.com/abhisek/bodypath/internal/progress"
	"github.com/abhisek/bodypath/internal/questions"
	"github.com/abhisek/bodypath/internal/store"
)

// appEnv is everything a command needs, built from config and flags.
type appEnv struct {
	cfg      config.Config
	log      *logger.Logger
	kv       store.KV
	rdb      *goredis.Client // nil unless a redis backend is configured
	notifier notify.Notifier
	events   *notify.Bus // in-process listeners, always fed
	rec      *progress.Recorder

	closers []func() error
}

// openEnv loads configuration and opens the store, notifier and recorder.
// Callers must Close the result.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		cfg.UserID = u
	}

	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	e := &appEnv{cfg: cfg, log: log}
	e.closers = append(e.closers, func() error { log.Sync(); return nil })

	if err := e.openStore(ctx, cmd); err != nil {
		e.Close()
		return nil, err
	}
	if err := e.openNotifier(); err != nil {
		e.Close()
		return nil, err
	}

	ids, err := identity.NewStatic(cfg.UserID)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.rec = progress.NewRecorder(e.kv,
		progress.WithIdentity(ids),
		progress.WithNotifier(e.notifier),
		progress.WithLogger(log),
	)
	return e, nil
}

func (e *appEnv) openStore(ctx context.Context, cmd *cobra.Command) error {
	switch e.cfg.Store.Backend {
	case config.StoreMemory:
		e.kv = store.NewMemory(nil)
	case config.StoreRedis:
		r, err := store.OpenRedis(ctx, store.RedisOptions{
			Addr:      e.cfg.Redis.Addr,
			Password:  e.cfg.Redis.Password,
			DB:        e.cfg.Redis.DB,
			Namespace: e.cfg.Redis.Namespace,
		})
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		e.kv = r
		e.rdb = r.Client()
	default:
		dbPath, err := resolveDBPath(cmd, e.cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		e.kv = st
		e.log.Debug("store opened", "path", dbPath)
	}
	e.closers = append(e.closers, e.kv.Close)
	return nil
}

func (e *appEnv) openNotifier() error {
	e.events = notify.NewBus()
	switch e.cfg.Notify.Backend {
	case config.NotifyLog:
		e.notifier = notify.Multi{notify.NewLog(e.log), e.events}
	case config.NotifyRedis:
		rn, err := e.redisNotifier()
		if err != nil {
			return err
		}
		e.notifier = notify.Multi{notify.NewLog(e.log), rn, e.events}
	default:
		e.notifier = e.events
	}
	return nil
}

// trackUpdates reports whether a storage update was raised in this process
// since it was called.
func (e *appEnv) trackUpdates() (updated func() bool, stop func()) {
	var seen bool
	stop = e.events.Subscribe(func(event string) {
		if event == notify.EventStorageUpdate {
			seen = true
		}
	})
	return func() bool { return seen }, stop
}

// requireContent fails for lessons and reviews the question bank has no
// content for. Skip quizzes only need their unit in the curriculum, since
// unit 1 has no quiz of its own. Practice slots have no content.
func (e *appEnv) requireContent(ref progress.ItemRef) error {
	switch ref.Kind {
	case progress.ItemLesson, progress.ItemReview:
		bank, err := e.bank()
		if err != nil {
			return err
		}
		if !bank.Exists(ref) {
			return fmt.Errorf("%s not found", itemLabel(ref))
		}
	case progress.ItemSkipQuiz:
		if _, err := curriculum.UnitByNumber(ref.N); err != nil {
			return fmt.Errorf("%s not found", itemLabel(ref))
		}
	}
	return nil
}

// redisNotifier reuses the store's client when the store is Redis too.
func (e *appEnv) redisNotifier() (*notify.Redis, error) {
	if e.rdb == nil {
		e.rdb = goredis.NewClient(&goredis.Options{
			Addr:     e.cfg.Redis.Addr,
			Password: e.cfg.Redis.Password,
			DB:       e.cfg.Redis.DB,
		})
		e.closers = append(e.closers, e.rdb.Close)
	}
	return notify.NewRedis(e.log, e.rdb, e.cfg.Notify.Channel)
}

// bank loads the configured question bank, or the built-in one.
func (e *appEnv) bank() (*questions.Bank, error) {
	if dir := e.cfg.ContentDir; dir != "" {
		b, err := questions.Load(os.DirFS(dir))
		if err != nil {
			return nil, fmt.Errorf("load content from %s: %w", dir, err)
		}
		return b, nil
	}
	return questions.Embedded()
}

// Close releases resources in reverse order of acquisition.
func (e *appEnv) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
