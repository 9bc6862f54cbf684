package source

import (
	"regexp"
	"sort"
	"strings"
)

// Source supplies the raw endpoint strings to wait for. Keeping it behind an
// interface means the gate never reads ambient process state itself; tests
// hand it a fixed list.
type Source interface {
	Endpoints() []string
}

// Static is a fixed endpoint list (CLI arguments, config file entries).
type Static []string

func (s Static) Endpoints() []string { return s }

// Environ discovers endpoints from KEY=VALUE pairs whose keys follow the
// <SERVICE>_<INDEX>_PORT linking convention, e.g.
//
//	DB_1_PORT=tcp://172.17.0.5:5432
//
// Each matching value is taken as an endpoint URL. Duplicate values collapse
// to one and the output is sorted: discovery order carries no meaning.
type Environ []string

var portVar = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*_[0-9]+_PORT$`)

func (e Environ) Endpoints() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, kv := range e {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" || !portVar.MatchString(k) {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
