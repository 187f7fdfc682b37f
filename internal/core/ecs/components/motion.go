package components

// Position is a plain 2D coordinate component.
type Position struct {
	X, Y float64
}

// Velocity is a plain 2D displacement-per-tick component.
type Velocity struct {
	DX, DY float64
}

// Integrate applies v scaled by dt to p, the simplest possible motion
// system step.
func Integrate(p *Position, v Velocity, dt float64) {
	p.X += v.DX * dt
	p.Y += v.DY * dt
}

// Tag is a zero-size marker component; the component set specializes
// its storage to track only presence and the enabled bit for types
// like this.
type Tag struct{}
