package haunted

import (
	"sort"

	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/logger"
	"github.com/Carmen-Shannon/hauntedhouse/engine/tunable"
	"go.uber.org/zap"
)

// RegisterTunables exposes the live-tweakable scene values.
//
// Parameters:
//   - reg: the registry to add to
//   - rig: the lights whose values are exposed
//   - wisps: the wisp animator whose speed is exposed
//
// Returns:
//   - error: an error if a parameter is rejected by the registry
func RegisterTunables(reg tunable.Registry, rig LightRig, wisps *WispAnimator) error {
	params := []tunable.Param{
		intensityParam("ambient.intensity", rig.Ambient),
		intensityParam("moon.intensity", rig.Moon),
		positionParam("moon.x", rig.Moon, 0),
		positionParam("moon.y", rig.Moon, 1),
		positionParam("moon.z", rig.Moon, 2),
		{
			Name: "wisps.speed",
			Get:  wisps.Speed,
			Set:  wisps.SetSpeed,
			Min:  0,
			Max:  4,
			Step: 0.01,
		},
	}
	for _, p := range params {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}

func intensityParam(name string, l light.Light) tunable.Param {
	return tunable.Param{
		Name: name,
		Get:  l.Intensity,
		Set:  l.SetIntensity,
		Min:  0,
		Max:  1,
		Step: 0.001,
	}
}

func positionParam(name string, l light.Light, axis int) tunable.Param {
	return tunable.Param{
		Name: name,
		Get: func() float32 {
			return l.Position()[axis]
		},
		Set: func(v float32) {
			p := l.Position()
			p[axis] = v
			l.SetPosition(p.X(), p.Y(), p.Z())
		},
		Min:  -5,
		Max:  5,
		Step: 0.001,
	}
}

// ApplyTunables sets each value in name order. Unknown names are logged and skipped.
//
// Parameters:
//   - reg: the registry
//   - values: parameter values by name
//
// Returns:
//   - int: how many values were applied
func ApplyTunables(reg tunable.Registry, values map[string]float32) int {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		got, err := reg.Set(name, values[name])
		if err != nil {
			logger.Log.Warn("tunable not applied", zap.String("name", name), zap.Error(err))
			continue
		}
		logger.Log.Debug("tunable applied", zap.String("name", name), zap.Float32("value", got))
		applied++
	}
	return applied
}
