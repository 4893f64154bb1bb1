package haunted

import (
	"github.com/Carmen-Shannon/hauntedhouse/engine/light"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const wispCount = 3

// Wave is one sinusoidal term, Amplitude·sin(Frequency·t).
type Wave struct {
	Amplitude float32 `toml:"amplitude" yaml:"amplitude"`
	Frequency float32 `toml:"frequency" yaml:"frequency"`
}

func (w Wave) at(t float32) float32 {
	return w.Amplitude * math32.Sin(w.Frequency*t)
}

// WispOrbit is the closed-form path of a wisp: a circle of Radius at angular speed Omega in the
// XZ plane, offset per axis by a sum of waves.
type WispOrbit struct {
	Omega  float32 `toml:"omega" yaml:"omega"`
	Radius float32 `toml:"radius" yaml:"radius"`
	X      []Wave  `toml:"x" yaml:"x"`
	Y      []Wave  `toml:"y" yaml:"y"`
	Z      []Wave  `toml:"z" yaml:"z"`
}

// Position returns the orbit position at time t. It is a pure function of t.
func (o WispOrbit) Position(t float32) mgl32.Vec3 {
	angle := o.Omega * t
	x := math32.Cos(angle) * o.Radius
	z := math32.Sin(angle) * o.Radius
	var y float32
	for _, w := range o.X {
		x += w.at(t)
	}
	for _, w := range o.Y {
		y += w.at(t)
	}
	for _, w := range o.Z {
		z += w.at(t)
	}
	return mgl32.Vec3{x, y, z}
}

// DefaultWispOrbits returns the three stock orbits: a tight fast loop, a wider bobbing one and
// a slow wobbling outer one.
func DefaultWispOrbits() []WispOrbit {
	return []WispOrbit{
		{
			Omega:  0.5,
			Radius: 4,
			Y:      []Wave{{Amplitude: 3, Frequency: 1}},
		},
		{
			Omega:  0.32,
			Radius: 5,
			Y:      []Wave{{Amplitude: 4, Frequency: 1}, {Amplitude: 1, Frequency: 2.5}},
		},
		{
			Omega:  0.18,
			Radius: 7,
			X:      []Wave{{Amplitude: 1, Frequency: 0.32}},
			Y:      []Wave{{Amplitude: 3, Frequency: 1}, {Amplitude: 1, Frequency: 2.5}},
			Z:      []Wave{{Amplitude: 1, Frequency: 0.5}},
		},
	}
}

// WispAnimator moves each wisp light along its own orbit. It implements loop.Updater.
type WispAnimator struct {
	orbits []WispOrbit
	lights []light.Light
	// speed scales the clock before it is fed to the orbits.
	speed float32
}

// NewWispAnimator pairs orbits with lights by index. Extra orbits or lights are ignored.
func NewWispAnimator(orbits []WispOrbit, lights []light.Light, speed float32) *WispAnimator {
	n := min(len(orbits), len(lights))
	return &WispAnimator{
		orbits: orbits[:n],
		lights: lights[:n],
		speed:  speed,
	}
}

// Update places every wisp at its orbit position for the elapsed time.
func (a *WispAnimator) Update(elapsed float32) {
	t := elapsed * a.speed
	for i, o := range a.orbits {
		p := o.Position(t)
		a.lights[i].SetPosition(p.X(), p.Y(), p.Z())
	}
}

// Speed returns the animation time scale.
//
// Returns:
//   - float32: multiplier applied to elapsed seconds before sampling the orbits
func (a *WispAnimator) Speed() float32 {
	return a.speed
}

// SetSpeed changes the animation time scale. It takes effect on the next Update.
//
// Parameters:
//   - speed: multiplier applied to elapsed seconds; 0 freezes the wisps
func (a *WispAnimator) SetSpeed(speed float32) {
	a.speed = speed
}
