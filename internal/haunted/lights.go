package haunted

import (
	"fmt"

	"github.com/Carmen-Shannon/hauntedhouse/common"
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/Carmen-Shannon/hauntedhouse/engine/scene"
)

var moonColor = common.MustHexColor("#b9d5ff")

// LightRig holds the scene's lights. Each wisp is its own light.
type LightRig struct {
	Ambient light.Light
	Moon    light.Light
	Door    light.Light
	Wisps   []light.Light
}

// All returns every light in the order they are added to the scene.
func (r LightRig) All() []light.Light {
	return append([]light.Light{r.Ambient, r.Moon, r.Door}, r.Wisps...)
}

// NewLightRig creates the ambient, moon, door and wisp lights. The door light is positioned
// relative to the house so that it follows any transform of the house group.
//
// Parameters:
//   - wisps: the wisp color, intensity and falloff settings
//   - house: the house group the door light hangs from
//
// Returns:
//   - LightRig: the lights
//   - error: an error if a wisp color cannot be parsed
func NewLightRig(wisps WispsConfig, house scene.Node) (LightRig, error) {
	rig := LightRig{
		Ambient: light.NewLight(light.LightTypeAmbient,
			light.WithName("ambient"),
			light.WithColor(moonColor),
			light.WithIntensity(0.12),
		),
		Moon: light.NewLight(light.LightTypeDirectional,
			light.WithName("moon"),
			light.WithColor(moonColor),
			light.WithIntensity(0.12),
			light.WithPosition(4, 5, -2),
			light.WithTarget(0, 0, 0),
		),
		Door: light.NewLight(light.LightTypePoint,
			light.WithName("door"),
			light.WithColor(common.MustHexColor("#ff7c46")),
			light.WithIntensity(1),
			light.WithRange(7),
			light.WithPosition(0, 2, 2.7),
			light.WithParent(house),
		),
	}

	rig.Wisps = make([]light.Light, len(wisps.Colors))
	for i, hex := range wisps.Colors {
		c, err := common.ParseHexColor(hex)
		if err != nil {
			return LightRig{}, fmt.Errorf("wisp%d: %w", i+1, err)
		}
		rig.Wisps[i] = light.NewLight(light.LightTypePoint,
			light.WithName(fmt.Sprintf("wisp%d", i+1)),
			light.WithColor(c),
			light.WithIntensity(wisps.Intensity),
			light.WithRange(wisps.Range),
			light.WithDecay(wisps.Decay),
		)
	}
	return rig, nil
}
