package mapping

import (
	"context"
	"log/slog"

	"github.com/earthmeta/lodserver/entity"
)

// Collector expands a set of root entities into the transitive closure
// of entities reachable through weak references. Traversal is
// level-order and bounded: hitting either cap stops early with a
// warning and the entities collected so far are still exported.
type Collector struct {
	Resolver    entity.Resolver
	MaxDepth    int
	MaxEntities int
	Logger      *slog.Logger
}

// Default traversal bounds. Deep enough for any realistic catalogue;
// the caps exist to survive pathological reference chains in source
// data, not to shape normal output.
const (
	DefaultMaxDepth    = 10
	DefaultMaxEntities = 50000
)

// NewCollector builds a collector with default bounds.
func NewCollector(resolver entity.Resolver, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		Resolver:    resolver,
		MaxDepth:    DefaultMaxDepth,
		MaxEntities: DefaultMaxEntities,
		Logger:      logger,
	}
}

// Collect returns the deduplicated closure in discovery order, roots
// first. A uid is enqueued at most once; unresolvable references are
// skipped with a warning.
func (c *Collector) Collect(ctx context.Context, roots []entity.Entity) []entity.Entity {
	visited := make(map[string]bool)
	var out []entity.Entity

	frontier := make([]entity.Entity, 0, len(roots))
	for _, r := range roots {
		if r == nil || visited[r.UID()] {
			continue
		}
		if len(out) >= c.MaxEntities {
			c.Logger.Warn("traversal entity cap reached, exporting partial closure",
				slog.Int("max_entities", c.MaxEntities))
			return out
		}
		visited[r.UID()] = true
		frontier = append(frontier, r)
		out = append(out, r)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		if depth >= c.MaxDepth {
			c.Logger.Warn("traversal depth cap reached, exporting partial closure",
				slog.Int("max_depth", c.MaxDepth),
				slog.Int("collected", len(out)))
			break
		}
		var next []entity.Entity
		for _, e := range frontier {
			for _, ref := range e.References() {
				if visited[ref.UID] {
					continue
				}
				visited[ref.UID] = true

				if len(out) >= c.MaxEntities {
					c.Logger.Warn("traversal entity cap reached, exporting partial closure",
						slog.Int("max_entities", c.MaxEntities))
					return out
				}
				target, err := c.Resolver.Resolve(ctx, ref)
				if err != nil {
					c.Logger.Warn("unresolvable reference during traversal",
						slog.String("uid", ref.UID),
						slog.String("type", string(ref.Type)),
						slog.String("error", err.Error()))
					continue
				}
				next = append(next, target)
				out = append(out, target)
			}
		}
		frontier = next
	}
	return out
}
