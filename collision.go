// Package feather2d runs the narrow phase of a 2D collision pipeline: for each
// candidate pair of convex shapes it decides whether they overlap, how deep,
// and how far apart they are when they do not.
package feather2d

import (
	"cmp"
	"runtime"
	"slices"
	"sync"

	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/epa"
	"github.com/akmonengine/feather2d/gjk"
	"github.com/akmonengine/feather2d/shape"
	"go.uber.org/zap"
)

// Pair is a candidate pair produced by a broad phase.
type Pair struct {
	ID int
	A  shape.ConvexShape
	B  shape.ConvexShape
}

// Contact is the narrow-phase outcome of one Pair.
type Contact struct {
	Pair
	Intersecting bool

	// Set when Intersecting. Converged is false when EPA ran out of iterations
	// and Penetration is a best estimate.
	Penetration epa.Result
	Converged   bool

	// Set when the shapes are separated and the distance query succeeded.
	Separation    gjk.DistanceResult
	HasSeparation bool

	// Undecided is set when GJK ran out of iterations before telling overlap
	// from separation. No other field but Pair is set then.
	Undecided bool
}

// Options configures NarrowPhase and CollideAll.
type Options struct {
	// Workers is the number of goroutines per stage, GOMAXPROCS when <= 0.
	Workers int
	// Zero fields of Config take their default value. An invalid Config is
	// replaced by config.Default() and reported as a warning.
	Config config.Config
	// Logger receives debug entries for unresolved queries, nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns options with the default configuration and no logging.
func DefaultOptions() Options {
	return Options{Config: config.Default()}
}

func (o Options) normalize() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	o.Config = config.Fill(o.Config)
	if err := o.Config.Validate(); err != nil {
		o.Logger.Warn("invalid narrow phase config, using defaults", zap.Error(err))
		o.Config = config.Default()
	}
	return o
}

// IntersectingPair carries the GJK state of an overlapping pair to the EPA stage.
type IntersectingPair struct {
	Pair
	State *gjk.State
}

// SeparatedPair is a pair GJK did not find intersecting. Undecided pairs ran
// out of iterations and skip the distance query.
type SeparatedPair struct {
	Pair
	Undecided bool
}

// NarrowPhase consumes pairs until the channel is closed and returns one
// Contact per pair, sorted by Pair.ID.
//
// GJK runs first; overlapping pairs continue to EPA with the GJK simplex and
// separated pairs continue to the distance query. Pairs GJK could not decide
// within its budget come back Undecided. Each stage runs on opts.Workers
// goroutines.
func NarrowPhase(pairs <-chan Pair, opts Options) []Contact {
	opts = opts.normalize()

	intersecting, separated := GJK(pairs, opts)

	allContacts := make(chan Contact, opts.Workers*2)
	var wg sync.WaitGroup

	// Path 1: penetration of overlapping pairs
	wg.Add(1)
	go func() {
		defer wg.Done()
		for contact := range EPA(intersecting, opts) {
			allContacts <- contact
		}
	}()

	// Path 2: separation of disjoint pairs
	wg.Add(1)
	go func() {
		defer wg.Done()
		for contact := range Separation(separated, opts) {
			allContacts <- contact
		}
	}()

	go func() {
		wg.Wait()
		close(allContacts)
	}()

	contacts := make([]Contact, 0)
	for c := range allContacts {
		contacts = append(contacts, c)
	}
	sortContacts(contacts)

	return contacts
}

// GJK runs the intersection test on opts.Workers goroutines and dispatches
// each pair to one of the two returned channels. Both are closed once pairs is
// drained.
//
// States sent on the first channel come from gjk.StatePool; the consumer owns
// them and returns them to the pool.
func GJK(pairs <-chan Pair, opts Options) (<-chan IntersectingPair, <-chan SeparatedPair) {
	opts = opts.normalize()
	intersecting := make(chan IntersectingPair, opts.Workers)
	separated := make(chan SeparatedPair, opts.Workers)

	go func() {
		var wg sync.WaitGroup
		defer close(intersecting)
		defer close(separated)

		for range opts.Workers {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairs {
					state := gjk.StatePool.Get().(*gjk.State)
					state.Reset(p.A, p.B)
					state.Config = opts.Config.Intersection

					result := gjk.Run(state)
					if result == gjk.Intersection {
						intersecting <- IntersectingPair{Pair: p, State: state}
					} else {
						gjk.StatePool.Put(state)
						separated <- SeparatedPair{Pair: p, Undecided: result == gjk.Working}
					}
				}
			}()
		}
		wg.Wait()
	}()

	return intersecting, separated
}

// EPA solves the penetration of each overlapping pair on opts.Workers goroutines.
func EPA(pairs <-chan IntersectingPair, opts Options) <-chan Contact {
	opts = opts.normalize()
	ch := make(chan Contact, opts.Workers)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range opts.Workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for pair := range pairs {
					ch <- penetrate(pair.Pair, pair.State, opts)
					gjk.StatePool.Put(pair.State)
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}

// Separation runs the distance query for each separated pair on opts.Workers goroutines.
func Separation(pairs <-chan SeparatedPair, opts Options) <-chan Contact {
	opts = opts.normalize()
	ch := make(chan Contact, opts.Workers)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for range opts.Workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for pair := range pairs {
					if pair.Undecided {
						ch <- undecided(pair.Pair, opts)
					} else {
						ch <- separate(pair.Pair, opts)
					}
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}

// CollideAll is the slice form of NarrowPhase: pairs are split in contiguous
// chunks, one per worker, and each pair runs through every stage on the same
// goroutine.
func CollideAll(pairs []Pair, opts Options) []Contact {
	opts = opts.normalize()
	contacts := make([]Contact, len(pairs))

	task(opts.Workers, pairs, func(i int, p Pair) {
		contacts[i] = collide(p, opts)
	})
	sortContacts(contacts)

	return contacts
}

// collide runs a single pair through the narrow phase.
func collide(p Pair, opts Options) Contact {
	state := gjk.StatePool.Get().(*gjk.State)
	defer gjk.StatePool.Put(state)

	state.Reset(p.A, p.B)
	state.Config = opts.Config.Intersection
	switch gjk.Run(state) {
	case gjk.Intersection:
		return penetrate(p, state, opts)
	case gjk.Working:
		return undecided(p, opts)
	default:
		return separate(p, opts)
	}
}

func undecided(p Pair, opts Options) Contact {
	opts.Logger.Debug("intersection test did not terminate",
		zap.Int("pair", p.ID),
		zap.Int("max_iterations", opts.Config.Intersection.MaxIterations),
	)
	return Contact{Pair: p, Undecided: true}
}

func penetrate(p Pair, g *gjk.State, opts Options) Contact {
	contact := Contact{Pair: p, Intersecting: true}

	state := epa.NewState(g).WithConfig(opts.Config.Penetration)
	contact.Converged = epa.Solve(state, &contact.Penetration)
	if !contact.Converged {
		opts.Logger.Debug("penetration did not converge",
			zap.Int("pair", p.ID),
			zap.Int("max_iterations", opts.Config.Penetration.MaxIterations),
			zap.Float64("depth", contact.Penetration.Depth),
		)
	}

	return contact
}

func separate(p Pair, opts Options) Contact {
	contact := Contact{Pair: p}

	state := gjk.NewDistanceState(p.A, p.B).WithConfig(opts.Config.Distance)
	contact.HasSeparation = gjk.Distance(state, &contact.Separation)
	if !contact.HasSeparation {
		opts.Logger.Debug("no separation for disjoint pair",
			zap.Int("pair", p.ID),
			zap.Int("max_iterations", opts.Config.Distance.MaxIterations),
		)
	}

	return contact
}

func sortContacts(contacts []Contact) {
	slices.SortFunc(contacts, func(a, b Contact) int {
		return cmp.Compare(a.ID, b.ID)
	})
}
