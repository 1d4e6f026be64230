package live

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/isotower/pkg/core/iso"
	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/render/sceneview"
	"github.com/matzehuels/isotower/pkg/render/vector"
)

const (
	// EntranceOffset is how far below its resting place a tier starts.
	EntranceOffset = 24.0

	// HoverLift raises the hovered tier.
	HoverLift = 6.0

	// HoverScale enlarges the hovered tier about its centre.
	HoverScale = 1.02

	// DimOpacity is applied to every tier but the hovered one.
	DimOpacity = 0.45

	// DefaultStepDelay separates consecutive tier entrances.
	DefaultStepDelay = 120 * time.Millisecond

	// DefaultBaseDelay precedes the first tier entrance.
	DefaultBaseDelay = 80 * time.Millisecond
)

var hoverStyle = sceneview.TierStyle{OffsetY: -HoverLift, Scale: HoverScale, Opacity: 1, Glow: true, Class: "hovered"}

// NoTier is returned when no tier is hovered.
const NoTier = -1

// Option configures a [Diagram].
type Option func(*Diagram)

// WithScheduler replaces the timer source.
func WithScheduler(s Scheduler) Option {
	return func(d *Diagram) {
		if s != nil {
			d.sched = s
		}
	}
}

// WithLogger sets the logger used for composition warnings and lifecycle
// debug output.
func WithLogger(l *log.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithDelays overrides the entrance stagger.
func WithDelays(step, base time.Duration) Option {
	return func(d *Diagram) { d.step, d.base = step, base }
}

// WithGrid toggles the background grid (default on).
func WithGrid(on bool) Option { return func(d *Diagram) { d.grid = on } }

// WithLabels toggles labels (default on).
func WithLabels(on bool) Option { return func(d *Diagram) { d.labels = on } }

// Diagram is one interactive diagram instance.
type Diagram struct {
	sched  Scheduler
	logger *log.Logger
	step   time.Duration
	base   time.Duration
	grid   bool
	labels bool

	mu       sync.Mutex
	cfg      *diagram.Config
	hash     string
	scene    *scene.Scene
	id       string
	mounted  bool
	entered  []bool
	hovered  int
	timers   map[int]Timer
	watchers []func()
}

// New returns an unmounted diagram.
func New(opts ...Option) *Diagram {
	d := &Diagram{
		sched:   SystemScheduler,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
		step:    DefaultStepDelay,
		base:    DefaultBaseDelay,
		grid:    true,
		labels:  true,
		hovered: NoTier,
		timers:  make(map[int]Timer),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Mount shows cfg. A config identical to the mounted one is a no-op;
// anything else cancels pending entrance timers, resets the state and
// schedules a fresh entrance. Structural config errors are returned and
// leave the current state untouched.
func (d *Diagram) Mount(cfg *diagram.Config) error {
	s, err := scene.Compose(cfg, scene.WithLogger(d.logger))
	if err != nil {
		return err
	}
	hash := cfg.Hash()

	d.mu.Lock()
	if d.mounted && d.hash == hash {
		d.mu.Unlock()
		return nil
	}
	d.cancelLocked()
	d.cfg, d.hash, d.scene = cfg, hash, s
	d.id = uuid.NewString()
	d.mounted = true
	d.entered = make([]bool, len(cfg.Tiers))
	d.hovered = NoTier
	for i := range d.entered {
		d.scheduleLocked(d.id, i)
	}
	id := d.id
	d.mu.Unlock()

	d.logger.Debug("mounted diagram", "instance", id, "tiers", len(cfg.Tiers), "skipped", len(s.Skipped))
	d.notify()
	return nil
}

func (d *Diagram) scheduleLocked(id string, tier int) {
	delay := time.Duration(tier)*d.step + d.base
	d.timers[tier] = d.sched.AfterFunc(delay, func() { d.enter(id, tier) })
}

func (d *Diagram) enter(id string, tier int) {
	d.mu.Lock()
	if !d.mounted || d.id != id || tier >= len(d.entered) {
		d.mu.Unlock()
		d.logger.Debug("ignoring stale entrance", "instance", id, "tier", tier)
		return
	}
	delete(d.timers, tier)
	d.entered[tier] = true
	d.mu.Unlock()
	d.notify()
}

func (d *Diagram) cancelLocked() {
	for tier, t := range d.timers {
		t.Stop()
		delete(d.timers, tier)
	}
}

// Unmount cancels every pending timer and releases the diagram.
func (d *Diagram) Unmount() {
	d.mu.Lock()
	d.cancelLocked()
	was := d.mounted
	d.mounted = false
	d.hovered = NoTier
	d.mu.Unlock()
	if was {
		d.notify()
	}
}

// Settle completes every pending entrance immediately.
func (d *Diagram) Settle() {
	d.mu.Lock()
	if !d.mounted {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	for i := range d.entered {
		d.entered[i] = true
	}
	d.mu.Unlock()
	d.notify()
}

// Enter is the pointer-enter hook of tier.
func (d *Diagram) Enter(tier int) {
	d.setHover(tier, true)
}

// Leave is the pointer-leave hook of tier.
func (d *Diagram) Leave(tier int) {
	d.setHover(tier, false)
}

func (d *Diagram) setHover(tier int, on bool) {
	d.mu.Lock()
	if !d.mounted || tier < 0 || tier >= len(d.entered) {
		d.mu.Unlock()
		return
	}
	prev := d.hovered
	switch {
	case on:
		d.hovered = tier
	case d.hovered == tier:
		d.hovered = NoTier
	}
	changed := prev != d.hovered
	d.mu.Unlock()
	if changed {
		d.notify()
	}
}

// HoverAt hit-tests the tier floors at a screen point, topmost first, and
// updates the hovered tier. It returns the hovered tier or [NoTier].
func (d *Diagram) HoverAt(sx, sy float64) int {
	d.mu.Lock()
	if !d.mounted {
		d.mu.Unlock()
		return NoTier
	}
	hit := TierAt(d.scene, sx, sy)
	prev := d.hovered
	d.hovered = hit
	d.mu.Unlock()
	if prev != hit {
		d.notify()
	}
	return hit
}

// TierAt returns the config index of the topmost tier whose floor contains
// the screen point, or [NoTier].
func TierAt(s *scene.Scene, sx, sy float64) int {
	for i := len(s.Tiers) - 1; i >= 0; i-- {
		t := s.Tiers[i]
		p := iso.Point{X: sx, Y: sy}.Sub(s.Origin)
		x, y := iso.UnprojectFloor(p.X, p.Y+t.Elevation)
		if x >= 0 && x <= s.FloorWidth && y >= 0 && y <= s.FloorDepth {
			return t.Index
		}
	}
	return NoTier
}

// OnChange registers fn to run after every state change. It is called
// without the diagram's lock held, possibly from a timer goroutine.
func (d *Diagram) OnChange(fn func()) {
	d.mu.Lock()
	d.watchers = append(d.watchers, fn)
	d.mu.Unlock()
}

func (d *Diagram) notify() {
	d.mu.Lock()
	watchers := append([]func(){}, d.watchers...)
	d.mu.Unlock()
	for _, fn := range watchers {
		fn()
	}
}

// State is a snapshot of the presentation state.
type State struct {
	Instance string
	Mounted  bool
	Entered  []bool
	Hovered  int
	Pending  int
}

// AllEntered reports whether every tier has entered.
func (s State) AllEntered() bool {
	for _, e := range s.Entered {
		if !e {
			return false
		}
	}
	return true
}

// State returns a snapshot of the current state.
func (d *Diagram) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{
		Instance: d.id,
		Mounted:  d.mounted,
		Entered:  append([]bool(nil), d.entered...),
		Hovered:  d.hovered,
		Pending:  len(d.timers),
	}
}

// Scene returns the composed scene of the mounted config.
func (d *Diagram) Scene() *scene.Scene {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scene
}

// Presentation returns the tier styles for the current state.
func (d *Diagram) Presentation() sceneview.Presentation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.presentationLocked()
}

func (d *Diagram) presentationLocked() sceneview.Presentation {
	p := sceneview.Presentation{Hooks: true, Tiers: make(map[int]sceneview.TierStyle)}
	for i, entered := range d.entered {
		switch {
		case !entered:
			p.Tiers[i] = sceneview.TierStyle{OffsetY: EntranceOffset, Scale: 1, Opacity: 0, Class: "entering"}
		case d.hovered == i:
			p.Tiers[i] = hoverStyle
		case d.hovered != NoTier:
			p.Tiers[i] = sceneview.TierStyle{Scale: 1, Opacity: DimOpacity, Class: "dimmed"}
		}
	}
	return p
}

// Tree returns the presentation tree of the current state, or nil when
// nothing was ever mounted.
func (d *Diagram) Tree() *vector.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.scene == nil {
		return nil
	}
	root := sceneview.Document(d.scene, d.presentationLocked(), sceneview.Options{
		Grid:   d.grid,
		Labels: d.labels,
		ID:     shortID(d.hash),
	})
	root.Set("data-instance", d.id)
	return root
}

func shortID(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
