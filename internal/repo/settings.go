package repo

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tixhook/internal/models"
)

// SettingsPG stores the per-outcome webhook endpoints under keys following
// the host's option naming convention: hook_<outcome_code>.
type SettingsPG struct{ DB *pgxpool.Pool }

func HookKey(code int) string { return fmt.Sprintf("hook_%d", code) }

// ValidHookURL reports whether s is a well-formed absolute http(s) URL.
// Validation happens at save time only; dispatch trusts stored values.
func ValidHookURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// HookURL returns the configured endpoint for an outcome code, or "" when
// the outcome has no hook configured.
func (r *SettingsPG) HookURL(ctx context.Context, code int) (string, error) {
	var v string
	err := r.DB.QueryRow(ctx, `select value from settings where key = $1`, HookKey(code)).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return v, err
}

// AllHooks returns the configured endpoint per outcome code.
func (r *SettingsPG) AllHooks(ctx context.Context) (map[int]string, error) {
	out := make(map[int]string, len(models.OutcomeLabels))
	for code := range models.OutcomeLabels {
		u, err := r.HookURL(ctx, code)
		if err != nil {
			return nil, err
		}
		if u != "" {
			out[code] = u
		}
	}
	return out, nil
}

// SaveHooks validates and stores hook URLs. Entries that fail URL validation
// are dropped silently; outcomes absent from in (or invalid) lose any
// previously stored endpoint. Returns what was actually kept.
func (r *SettingsPG) SaveHooks(ctx context.Context, in map[int]string) (map[int]string, error) {
	kept := make(map[int]string)
	for code := range models.OutcomeLabels {
		u, ok := in[code]
		if ok && u != "" && ValidHookURL(u) {
			if _, err := r.DB.Exec(ctx, `
				insert into settings(key, value) values ($1, $2)
				on conflict (key) do update set value = excluded.value
			`, HookKey(code), u); err != nil {
				return nil, err
			}
			kept[code] = u
			continue
		}
		if _, err := r.DB.Exec(ctx, `delete from settings where key = $1`, HookKey(code)); err != nil {
			return nil, err
		}
	}
	return kept, nil
}
