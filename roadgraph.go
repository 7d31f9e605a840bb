package roadgraph

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	"golang.org/x/sync/errgroup"

	"github.com/voidshard/roadgraph/internal/graph"
	"github.com/voidshard/roadgraph/internal/pathfind"
	"github.com/voidshard/roadgraph/internal/smooth"
	"github.com/voidshard/roadgraph/internal/tile"
)

var (
	// ErrMissingTerrain means New was given no terrain query.
	ErrMissingTerrain = errors.New("terrain query is required")

	// ErrMissingProvider means New was given no settlement provider.
	ErrMissingProvider = errors.New("settlement provider is required")

	// ErrDisconnected means the spanning tree failed to cover every
	// settlement. Can't happen over the complete graph built here, but
	// guards reuse of the builder with a sparse edge set.
	ErrDisconnected = errors.New("spanning tree does not cover all settlements")
)

// Roadgraph generates & holds the road network for one world. Create it
// with New, run Generate once at world build time, then query away.
type Roadgraph struct {
	cfg      Config
	terrain  Terrain
	provider SettlementProvider
	sink     EventSink
	log      *slog.Logger

	settlements []*Settlement
	byID        map[int]*Settlement
	roads       []*Road
	cache       *tile.Cache
	network     *Network

	displacer *smooth.Displacer

	smoothJobs chan smoothJob
	smoothQuit chan struct{}
	closeOnce  sync.Once
}

// Option tweaks a Roadgraph at construction time.
type Option func(*Roadgraph)

// WithEventSink sets the sink notified when generation completes.
func WithEventSink(s EventSink) Option {
	return func(r *Roadgraph) { r.sink = s }
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Roadgraph) { r.log = l }
}

// New validates collaborators & prepares a generator. Missing terrain or
// settlement provider fail here, not mid-generation. Call Generate to
// actually build roads.
func New(cfg Config, terrain Terrain, provider SettlementProvider, opts ...Option) (*Roadgraph, error) {
	if terrain == nil {
		return nil, errors.Wrap(ErrMissingTerrain, "roadgraph.New")
	}
	if provider == nil {
		return nil, errors.Wrap(ErrMissingProvider, "roadgraph.New")
	}

	cfg = cfg.withDefaults()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	r := &Roadgraph{
		cfg:        cfg,
		terrain:    terrain,
		provider:   provider,
		log:        slog.Default(),
		byID:       map[int]*Settlement{},
		cache:      tile.NewCache(cfg.TileSize),
		displacer:  smooth.NewDisplacer(cfg.Seed, cfg.NoiseScale, cfg.NoiseStrength),
		smoothJobs: make(chan smoothJob),
		smoothQuit: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}

	go r.smoothLoop()

	return r, nil
}

// Close stops the background smoothing worker. In-memory state stays
// queryable, and a Generate after Close simply smooths inline.
func (r *Roadgraph) Close() {
	r.closeOnce.Do(func() { close(r.smoothQuit) })
}

// Generate builds the whole network: pairwise edges, spanning tree,
// redundant extras, then a terrain-aware path per selected edge, the
// tile segment cache & finally a connectivity check. Runs once; calling
// it again regenerates from scratch.
func (r *Roadgraph) Generate(ctx context.Context) error {
	r.settlements = r.provider.Settlements()
	r.roads = []*Road{}
	r.byID = map[int]*Settlement{}
	for _, s := range r.settlements {
		r.byID[s.ID] = s
	}

	defer r.publish()

	if len(r.settlements) < 2 {
		r.log.Info("skipping road generation, not enough settlements",
			"settlements", len(r.settlements))
		return nil
	}

	positions := make([]model2d.Coord, len(r.settlements))
	for i, s := range r.settlements {
		positions[i] = s.Pos
	}

	all := graph.Edges(positions)
	tree := graph.SpanningTree(len(positions), all)
	if len(tree) != len(positions)-1 {
		return errors.Wrapf(ErrDisconnected, "got %d edges for %d settlements",
			len(tree), len(positions))
	}

	extra := graph.Redundant(all, tree,
		int(float64(len(positions))*r.cfg.ExtraConnectionRatio))
	selected := append(tree, extra...)

	// roads are built in small concurrent batches; each batch is awaited
	// before its results are appended, so the output containers only
	// ever see writes from this goroutine
	for start := 0; start < len(selected); start += r.cfg.RoadBatch {
		end := start + r.cfg.RoadBatch
		if end > len(selected) {
			end = len(selected)
		}

		batch := selected[start:end]
		results := make([]*Road, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		for i, e := range batch {
			i, e := i, e
			g.Go(func() error {
				results[i] = r.buildRoad(gctx, start+i, e)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, road := range results {
			if road == nil {
				continue
			}
			r.roads = append(r.roads, road)
			r.byID[road.From].Roads = append(r.byID[road.From].Roads, road.ID)
			r.byID[road.To].Roads = append(r.byID[road.To].Roads, road.ID)
		}
	}

	r.rebuildTiles()
	r.validate()

	if r.sink != nil {
		r.sink.RoadsGenerated(len(r.roads), len(r.settlements))
	}
	return nil
}

// publish snapshots the current state as the externally visible Network.
func (r *Roadgraph) publish() {
	r.network = &Network{
		Generation:  uuid.New(),
		Seed:        r.cfg.Seed,
		Built:       time.Now(),
		Settlements: r.settlements,
		Roads:       r.roads,
	}
}

// buildRoad turns one selected edge into a road: entry point choice, grid
// search (or fallback), smoothing & height sampling. A nil return means
// the edge was skipped; that never aborts the batch.
func (r *Roadgraph) buildRoad(ctx context.Context, index int, e graph.Edge) *Road {
	if e.A < 0 || e.A >= len(r.settlements) || e.B < 0 || e.B >= len(r.settlements) {
		r.log.Warn("skipping edge, settlement reference missing", "a", e.A, "b", e.B)
		return nil
	}
	from := r.settlements[e.A]
	to := r.settlements[e.B]

	start := chooseEntry(from, to.Pos)
	goal := chooseEntry(to, from.Pos)

	pcfg := pathfind.Config{
		Step:            r.cfg.PathStep,
		MaxIterations:   r.cfg.MaxIterations,
		YieldEvery:      r.cfg.YieldEvery,
		HeuristicWeight: r.cfg.HeuristicWeight,
	}

	pts, ok := pathfind.Find(ctx, start, goal, pcfg, r.passable, r.biomeCost)
	if !ok {
		r.log.Warn("pathfinding failed, using direct line",
			"from", from.ID, "to", to.ID)
		pts = pathfind.Fallback(start, goal, r.cfg.PathStep)
	}

	if len(pts) >= 3 {
		pts = r.smoothPath(pts, index)
	}

	path := make([]PathPoint, len(pts))
	for i, p := range pts {
		path[i] = PathPoint{Pos: p, Height: r.terrain.HeightAt(p.X, p.Y)}
	}

	return &Road{
		ID:       index + 1,
		From:     from.ID,
		To:       to.ID,
		Width:    r.cfg.RoadWidth,
		Surface:  r.cfg.RoadSurface,
		Length:   smooth.Length(pts),
		Path:     path,
		Fallback: !ok,
	}
}

// passable is the pathfinder's terrain predicate.
func (r *Roadgraph) passable(x, z float64) bool {
	return r.terrain.HeightAt(x, z) >= r.cfg.WaterLevel
}

// biomeCost is only consulted by the weighted search.
func (r *Roadgraph) biomeCost(x, z float64) float64 {
	if len(r.cfg.BiomeCosts) == 0 {
		return 1
	}
	if m, ok := r.cfg.BiomeCosts[r.terrain.BiomeAt(x, z)]; ok && m > 0 {
		return m
	}
	return 1
}

// smoothPath runs subdivision + displacement (preferably on the worker)
// then accepts each displaced point only if it stays above water, and
// finally enforces the minimum point spacing.
func (r *Roadgraph) smoothPath(pts []model2d.Coord, road int) []model2d.Coord {
	base, cand := r.smoothAsync(pts, road)

	out := make([]model2d.Coord, len(base))
	for i := range base {
		if cand[i] != base[i] && !r.passable(cand[i].X, cand[i].Y) {
			out[i] = base[i] // displaced under water, keep the original
			continue
		}
		out[i] = cand[i]
	}

	return smooth.Space(out, r.cfg.MinPointSpacing)
}

// smoothJob asks the worker for the subdivided path & its displacement
// candidates. Only plain point slices cross the channel.
type smoothJob struct {
	points []model2d.Coord
	road   int
	reply  chan smoothResult
}

type smoothResult struct {
	base, displaced []model2d.Coord
}

// smoothAsync delegates to the smoothing worker when it's free; a busy or
// broken worker means we just do the work inline.
func (r *Roadgraph) smoothAsync(pts []model2d.Coord, road int) ([]model2d.Coord, []model2d.Coord) {
	job := smoothJob{points: pts, road: road, reply: make(chan smoothResult, 1)}

	select {
	case r.smoothJobs <- job:
		res := <-job.reply
		if len(res.base) > 0 {
			return res.base, res.displaced
		}
		r.log.Debug("smoothing worker returned nothing, smoothing inline", "road", road)
	default:
		// worker busy with another road
	}

	return r.smoothSync(pts, road)
}

func (r *Roadgraph) smoothSync(pts []model2d.Coord, road int) ([]model2d.Coord, []model2d.Coord) {
	base := smooth.Subdivide(pts, r.cfg.SmoothIterations)
	return base, r.displacer.Candidates(base, road)
}

// smoothLoop is the worker goroutine. It never touches the terrain - it
// only subdivides & proposes displacements, both pure computations.
func (r *Roadgraph) smoothLoop() {
	for {
		select {
		case job := <-r.smoothJobs:
			job.reply <- r.runSmoothJob(job)
		case <-r.smoothQuit:
			return
		}
	}
}

func (r *Roadgraph) runSmoothJob(job smoothJob) (res smoothResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Warn("smoothing worker failed, caller will smooth inline",
				"road", job.road, "panic", rec)
			res = smoothResult{}
		}
	}()

	base := smooth.Subdivide(job.points, r.cfg.SmoothIterations)
	return smoothResult{base: base, displaced: r.displacer.Candidates(base, job.road)}
}

// rebuildTiles re-clips every road into the tile segment cache.
func (r *Roadgraph) rebuildTiles() {
	lines := make([]tile.Polyline, len(r.roads))
	for i, road := range r.roads {
		pts := make([]model2d.Coord, len(road.Path))
		for j, p := range road.Path {
			pts[j] = p.Pos
		}
		lines[i] = tile.Polyline{RoadID: road.ID, Width: road.Width, Points: pts}
	}
	r.cache.Rebuild(lines, r.cfg.TileBatch)
}

// chooseEntry picks the settlement entry point whose outward angle best
// matches the bearing toward the target, or synthesizes one inside the
// safe zone when the settlement registered none.
func chooseEntry(s *Settlement, toward model2d.Coord) model2d.Coord {
	dir := toward.Sub(s.Pos)
	bearing := math.Atan2(dir.Y, dir.X)

	if len(s.EntryPoints) == 0 {
		norm := dir.Norm()
		if norm == 0 {
			return s.Pos
		}
		return s.Pos.Add(dir.Scale(s.SafeZoneRadius * 0.8 / norm))
	}

	best := s.EntryPoints[0]
	bestDelta := angleDelta(best.Angle, bearing)
	for _, ep := range s.EntryPoints[1:] {
		if d := angleDelta(ep.Angle, bearing); d < bestDelta {
			best = ep
			bestDelta = d
		}
	}
	return best.Pos
}
