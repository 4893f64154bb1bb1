package haunted

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
)

// ConfigureShadows marks the casting and receiving nodes and gives every light except the
// ambient one the same shadow map size and far plane. Only the floor receives shadows.
//
// Parameters:
//   - g: the scene graph
//   - rig: the lights
//   - cfg: the shadow map size and far plane
func ConfigureShadows(g Graph, rig LightRig, cfg ShadowConfig) {
	casters := []scene.Node{g.Walls}
	casters = append(casters, g.Bushes...)
	casters = append(casters, g.Graves...)
	for _, n := range casters {
		n.SetCastShadow(true)
	}
	g.Floor.SetReceiveShadow(true)

	for _, l := range rig.All() {
		if l.Type() == light.LightTypeAmbient {
			continue
		}
		shadow := l.Shadow()
		shadow.Cast = true
		shadow.MapSize = cfg.MapSize
		shadow.Far = cfg.Far
		l.SetShadow(shadow)
	}
}
