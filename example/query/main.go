package main

import (
	"fmt"
	"os"

	"github.com/akmonengine/feather2d"
	"github.com/akmonengine/feather2d/config"
	"github.com/akmonengine/feather2d/shape"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Usage: query [config.yaml]
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if len(os.Args) > 1 {
		cfg, err = config.LoadFile(os.Args[1])
		if err != nil {
			logger.Fatal("cannot load config", zap.String("path", os.Args[1]), zap.Error(err))
		}
	}

	ground := shape.NewBox(mgl64.Vec2{0, -1}, mgl64.Vec2{10, 1})
	crate := shape.NewBox(mgl64.Vec2{0, 0.75}, mgl64.Vec2{1, 1})
	ball := shape.NewCircle(mgl64.Vec2{4, 1.5}, 0.5)
	wedge := shape.NewPolygon(mgl64.Vec2{2, 0.5}, mgl64.Vec2{3, 0.5}, mgl64.Vec2{2.5, 1.8})

	pairs := []feather2d.Pair{
		{ID: 0, A: crate, B: ground},
		{ID: 1, A: ball, B: ground},
		{ID: 2, A: crate, B: ball},
		{ID: 3, A: wedge, B: crate},
		{ID: 4, A: wedge, B: ball},
	}

	events := feather2d.NewEvents()
	events.Subscribe(feather2d.OVERLAP_ENTER, func(event feather2d.Event) {
		logger.Info("overlap", zap.Stringer("event", event.Type()), zap.Int("pair", event.PairID()))
	})

	contacts := feather2d.CollideAll(pairs, feather2d.Options{Config: cfg, Logger: logger})
	events.Record(contacts)

	for _, c := range contacts {
		if c.Intersecting {
			logger.Info("penetration",
				zap.Int("pair", c.ID),
				zap.Float64("depth", c.Penetration.Depth),
				zap.Float64s("normal", c.Penetration.Normal[:]),
				zap.Bool("converged", c.Converged),
			)
		} else if c.Undecided {
			logger.Warn("undecided", zap.Int("pair", c.ID))
		} else if c.HasSeparation {
			logger.Info("separation",
				zap.Int("pair", c.ID),
				zap.Float64("distance", c.Separation.Distance),
				zap.Float64s("point_a", c.Separation.PointA[:]),
				zap.Float64s("point_b", c.Separation.PointB[:]),
			)
		}
	}
}
