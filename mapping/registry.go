package mapping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

// ErrNotCompliant reports that an entity is missing a mandatory
// attribute for the requested vocabulary version. It is a soft error:
// the caller skips the entity and its inbound edge, logs a warning,
// and carries on.
var ErrNotCompliant = errors.New("entity not compliant")

// Func maps one entity onto the graph and returns its node.
type Func func(c *Context, e entity.Entity) (*rdf.Node, error)

// Mapper is the versioned mapping strategy for one entity type.
type Mapper struct {
	V1 Func
	V3 Func
}

// Registry is the capability table from entity type to mapping
// strategy. Build it once at startup and pass it by reference into
// every export and refresh call.
type Registry struct {
	mappers map[entity.TypeTag]Mapper
	logger  *slog.Logger
}

// NewRegistry builds a registry with the default strategy per type.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		mappers: make(map[entity.TypeTag]Mapper),
		logger:  logger,
	}
	r.install(entity.TypeDataset, Mapper{V1: mapDatasetV1, V3: mapDatasetV3})
	r.install(entity.TypeDistribution, Mapper{V1: mapDistributionV1, V3: mapDistributionV3})
	r.install(entity.TypeWebService, Mapper{V1: mapWebServiceV1, V3: mapWebServiceV3})
	r.install(entity.TypeOperation, Mapper{V1: mapOperation, V3: mapOperation})
	r.install(entity.TypeOrganization, Mapper{V1: mapOrganizationV1, V3: mapOrganizationV3})
	r.install(entity.TypeContactPoint, Mapper{V1: mapContactPointV1, V3: mapContactPointV3})
	r.install(entity.TypePerson, Mapper{V1: mapPersonV1, V3: mapPersonV3})
	r.install(entity.TypeFacility, Mapper{V1: mapFacility, V3: mapFacility})
	r.install(entity.TypeEquipment, Mapper{V1: mapEquipment, V3: mapEquipment})
	r.install(entity.TypeService, Mapper{V1: mapServiceV1, V3: mapServiceV3})
	r.install(entity.TypeSoftwareApplication, Mapper{V1: mapSoftwareApplication, V3: mapSoftwareApplication})
	r.install(entity.TypeSoftwareSourceCode, Mapper{V1: mapSoftwareSourceCode, V3: mapSoftwareSourceCode})
	r.install(entity.TypeCategory, Mapper{V1: mapCategory, V3: mapCategory})
	r.install(entity.TypeCategoryScheme, Mapper{V1: mapCategoryScheme, V3: mapCategoryScheme})
	return r
}

func (r *Registry) install(t entity.TypeTag, m Mapper) {
	r.mappers[t] = m
}

// Context carries the per-export state every mapper needs: the graph
// with its resource cache, the target version, and the resolver for
// weak references. One Context lives for exactly one export.
type Context struct {
	Ctx      context.Context
	Graph    *rdf.Graph
	Version  vocabulary.Version
	Registry *Registry
	Resolver entity.Resolver
	Logger   *slog.Logger
}

// NewContext assembles a mapping context for one export invocation.
func (r *Registry) NewContext(ctx context.Context, version vocabulary.Version, resolver entity.Resolver) *Context {
	return &Context{
		Ctx:      ctx,
		Graph:    rdf.NewGraph(version),
		Version:  version,
		Registry: r,
		Resolver: resolver,
		Logger:   r.logger,
	}
}

// Map dispatches the entity to its versioned strategy. The resource
// cache is consulted first: a uid maps to at most one node per export
// and a cache hit never re-maps. A false return means the entity was
// skipped (no strategy, or not compliant) and the caller must drop the
// edge, not abort.
func (r *Registry) Map(c *Context, e entity.Entity) (*rdf.Node, bool) {
	if e == nil {
		return nil, false
	}
	if n, ok := c.Graph.Cached(e.UID()); ok {
		return n, true
	}

	m, ok := r.mappers[e.TypeTag()]
	if !ok {
		r.logger.Warn("no mapper for entity type",
			slog.String("uid", e.UID()),
			slog.String("type", string(e.TypeTag())))
		return nil, false
	}
	fn := m.V1
	if c.Version == vocabulary.V3 {
		fn = m.V3
	}
	if fn == nil {
		return nil, false
	}

	n, err := fn(c, e)
	if err != nil {
		if errors.Is(err, ErrNotCompliant) {
			r.logger.Warn("entity not compliant, skipping",
				slog.String("uid", e.UID()),
				slog.String("type", string(e.TypeTag())),
				slog.String("version", string(c.Version)),
				slog.String("reason", err.Error()))
		} else {
			r.logger.Warn("mapping failed, skipping",
				slog.String("uid", e.UID()),
				slog.String("error", err.Error()))
		}
		return nil, false
	}
	return n, n != nil
}

// as narrows the dispatched entity to its concrete type. The registry
// keys strategies by type tag, so a mismatch here means a repository
// returned an entity under the wrong tag.
func as[T entity.Entity](e entity.Entity) (T, error) {
	t, ok := e.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("mapper received unexpected entity type %T for %s", e, e.UID())
	}
	return t, nil
}

// begin creates the named node for uid and records it in the resource
// cache. Mappers must call this after their compliance gate and before
// recursing into any cross-reference, so reference cycles terminate.
func (c *Context) begin(uid string) *rdf.Node {
	n := c.Graph.Resource(uid)
	c.Graph.PutCached(uid, n)
	return n
}

// mapRefs resolves each reference, maps it, and links the returned
// node under pred. Unresolvable references and non-compliant targets
// are skipped with a warning.
func (c *Context) mapRefs(s *rdf.Node, pred string, refs []entity.LinkedEntity) {
	for _, ref := range refs {
		target, err := c.Resolver.Resolve(c.Ctx, ref)
		if err != nil {
			c.Logger.Warn("unresolvable reference, skipping edge",
				slog.String("uid", ref.UID),
				slog.String("type", string(ref.Type)),
				slog.String("error", err.Error()))
			continue
		}
		n, ok := c.Registry.Map(c, target)
		if !ok {
			continue
		}
		c.Graph.AddResource(s, pred, n)
	}
}

// mapRefFirst links at most the first reference of the list. Used
// where the target vocabulary caps the property at one value while the
// domain model holds a list; the remainder is dropped in list order.
func (c *Context) mapRefFirst(s *rdf.Node, pred string, refs []entity.LinkedEntity) {
	if len(refs) == 0 {
		return
	}
	c.mapRefs(s, pred, refs[:1])
}
