package tune

// Regime is one weighted window auto-drive samples targets from. Lo and Hi
// are fractions of the parameter's [Min, Max] range; hold and move bounds
// are seconds at auto-rate 1.
type Regime struct {
	Name             string
	Weight           float64
	Lo, Hi           float64
	HoldMin, HoldMax float64
	MoveMin, MoveMax float64
}

// Field describes one registry entry: range, UI step, default, drift
// whitelist membership, and drive regimes (nil means not auto-drivable).
type Field struct {
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Drift   bool
	Regimes []Regime

	get func(*Params) float64
	set func(*Params, float64)
}

// Drivable reports whether auto-drive can take this parameter.
func (f Field) Drivable() bool { return len(f.Regimes) > 0 }

var steadyRegimes = []Regime{
	{Name: "subtle", Weight: 0.72, Lo: 0.35, Hi: 0.65, HoldMin: 2, HoldMax: 6, MoveMin: 1.5, MoveMax: 4},
	{Name: "dramatic", Weight: 0.28, Lo: 0, Hi: 1, HoldMin: 1, HoldMax: 3, MoveMin: 0.5, MoveMax: 1.5},
}

var burstRegimes = []Regime{
	{Name: "subtle", Weight: 0.62, Lo: 0.35, Hi: 0.65, HoldMin: 2, HoldMax: 6, MoveMin: 1.5, MoveMax: 4},
	{Name: "dramatic", Weight: 0.28, Lo: 0, Hi: 1, HoldMin: 1, HoldMax: 3, MoveMin: 0.5, MoveMax: 1.5},
	{Name: "burst", Weight: 0.1, Lo: 0.8, Hi: 1, HoldMin: 0.4, HoldMax: 1.2, MoveMin: 0.2, MoveMax: 0.6},
}

var fields = []Field{
	{Name: "scale", Min: 0.5, Max: 1.6, Step: 0.05, Default: 1, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.Scale }, set: func(p *Params, v float64) { p.Scale = v }},
	{Name: "bpm", Min: 60, Max: 180, Step: 1, Default: 120,
		get: func(p *Params) float64 { return p.BPM }, set: func(p *Params, v float64) { p.BPM = v }},
	{Name: "color-mix", Min: 0, Max: 1, Step: 0.05, Default: 0.65, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.ColorMix }, set: func(p *Params, v float64) { p.ColorMix = v }},
	{Name: "glow", Min: 0, Max: 1, Step: 0.05, Default: 0.6, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.Glow }, set: func(p *Params, v float64) { p.Glow = v }},
	{Name: "wave-amp", Min: 0, Max: 24, Step: 1, Default: 8, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.WaveAmp }, set: func(p *Params, v float64) { p.WaveAmp = v }},
	{Name: "wave-speed", Min: 0.1, Max: 4, Step: 0.1, Default: 1.2, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.WaveSpeed }, set: func(p *Params, v float64) { p.WaveSpeed = v }},
	{Name: "wave-layers", Min: 1, Max: 5, Step: 1, Default: 3, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.WaveLayers }, set: func(p *Params, v float64) { p.WaveLayers = v }},
	{Name: "wave-fade", Min: 0.4, Max: 0.95, Step: 0.05, Default: 0.7, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.WaveFade }, set: func(p *Params, v float64) { p.WaveFade = v }},
	{Name: "eq-gain", Min: 0, Max: 1.5, Step: 0.05, Default: 0.8, Drift: true, Regimes: burstRegimes,
		get: func(p *Params) float64 { return p.EqGain }, set: func(p *Params, v float64) { p.EqGain = v }},
	{Name: "eq-rate", Min: 0.5, Max: 4, Step: 0.1, Default: 1.8, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.EqRate }, set: func(p *Params, v float64) { p.EqRate = v }},
	{Name: "hold", Min: 0.6, Max: 6, Step: 0.1, Default: 2.2, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.HoldBase }, set: func(p *Params, v float64) { p.HoldBase = v }},
	{Name: "transition", Min: 0.2, Max: 3, Step: 0.05, Default: 0.9, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.TransBase }, set: func(p *Params, v float64) { p.TransBase = v }},
	{Name: "pose-jitter", Min: 0, Max: 1, Step: 0.05, Default: 0.35, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.PoseJitter }, set: func(p *Params, v float64) { p.PoseJitter = v }},
	{Name: "duration-jitter", Min: 0, Max: 1, Step: 0.05, Default: 0.4, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.DurJitter }, set: func(p *Params, v float64) { p.DurJitter = v }},
	{Name: "bob", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.BobAmount }, set: func(p *Params, v float64) { p.BobAmount = v }},
	{Name: "sway", Min: 0, Max: 1, Step: 0.05, Default: 0.5, Drift: true, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.SwayAmount }, set: func(p *Params, v float64) { p.SwayAmount = v }},
	{Name: "bounce", Min: 0, Max: 20, Step: 1, Default: 8, Drift: true, Regimes: burstRegimes,
		get: func(p *Params) float64 { return p.BounceAmp }, set: func(p *Params, v float64) { p.BounceAmp = v }},
	{Name: "drift-rate", Min: 0, Max: 1, Step: 0.05, Default: 0.35,
		get: func(p *Params) float64 { return p.DriftRate }, set: func(p *Params, v float64) { p.DriftRate = v }},
	{Name: "drift-amount", Min: 0, Max: 1, Step: 0.05, Default: 0.6,
		get: func(p *Params) float64 { return p.DriftAmt }, set: func(p *Params, v float64) { p.DriftAmt = v }},
	{Name: "auto-rate", Min: 0.2, Max: 3, Step: 0.1, Default: 1,
		get: func(p *Params) float64 { return p.AutoRate }, set: func(p *Params, v float64) { p.AutoRate = v }},
	{Name: "stroke", Min: 1, Max: 6, Step: 0.2, Default: 2.6, Regimes: steadyRegimes,
		get: func(p *Params) float64 { return p.Stroke }, set: func(p *Params, v float64) { p.Stroke = v }},
	{Name: "key-shuffle", Min: 4, Max: 30, Step: 1, Default: 10,
		get: func(p *Params) float64 { return p.KeyShuffle }, set: func(p *Params, v float64) { p.KeyShuffle = v }},
	{Name: "artwork-odds", Min: 0, Max: 0.02, Step: 0.001, Default: 0.004,
		get: func(p *Params) float64 { return p.ArtOdds }, set: func(p *Params, v float64) { p.ArtOdds = v }},
	{Name: "bpm-spring", Min: 1, Max: 10, Step: 0.5, Default: 4,
		get: func(p *Params) float64 { return p.BPMSpring }, set: func(p *Params, v float64) { p.BPMSpring = v }},
}

// Fields returns the registry in declaration order. The slice is shared;
// callers must not mutate it.
func Fields() []Field {
	return fields
}

// FieldByName looks a registry entry up by name.
func FieldByName(name string) (Field, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// DriftNames returns the names drift is allowed to move, in registry order.
func DriftNames() []string {
	var names []string
	for _, f := range fields {
		if f.Drift {
			names = append(names, f.Name)
		}
	}
	return names
}
