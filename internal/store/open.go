package store

import (
	"context"
	"fmt"
	"strings"
)

// OpenTarget opens a backend from a target string:
//
//	duckdb:<path>   DuckDB database (":memory:" allowed)
//	redis:<addr>    Redis server, document stored under redisKey
//	file:<path>     JSON file; a bare path means the same
func OpenTarget(ctx context.Context, target, redisKey string) (Backend, error) {
	scheme, rest, ok := strings.Cut(target, ":")
	if !ok || len(scheme) == 1 {
		// No scheme, or a Windows drive letter.
		return NewFileBackend(target)
	}
	switch scheme {
	case "duckdb":
		if rest == "" {
			return nil, fmt.Errorf("duckdb target requires a path")
		}
		return OpenDuckDB(ctx, rest)
	case "redis":
		if rest == "" {
			return nil, fmt.Errorf("redis target requires an address")
		}
		return OpenRedis(ctx, rest, "", 0, redisKey)
	case "file":
		return NewFileBackend(rest)
	default:
		return NewFileBackend(target)
	}
}
