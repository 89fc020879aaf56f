package progress

import (
	"context"
	"fmt"
)

// Reset deletes all progress visible to the current session: the unscoped
// lesson state and skip-quiz dates, and the session's scoped keys. Other
// users' scoped keys are left alone. It returns the number of keys removed.
func (r *Recorder) Reset(ctx context.Context) (int, error) {
	prefixes := []string{Namespace}
	if l, ok := r.layout(ctx); ok {
		prefixes = append(prefixes, l.ScopedNamespace())
	}

	removed := 0
	for _, p := range prefixes {
		keys, err := r.kv.Keys(ctx, p)
		if err != nil {
			return removed, fmt.Errorf("list %s keys: %w", p, err)
		}
		for _, k := range keys {
			if err := r.kv.Delete(ctx, k); err != nil {
				return removed, fmt.Errorf("delete %s: %w", k, err)
			}
			removed++
		}
	}

	if removed > 0 {
		r.publish(ctx)
	}
	r.log.Info("progress reset", "keys", removed)
	return removed, nil
}
