package liveness

type GestureState string

const (
	GestureWaitingOpen         GestureState = "WAITING_OPEN"
	GestureWaitingCloseConfirm GestureState = "WAITING_CLOSE_CONFIRM"
	GestureDone                GestureState = "DONE"
)

// GestureCounter counts closed->open mouth transitions. An open only counts
// after a closed sample was seen since the previous open, so holding the
// mouth open never counts twice.
type GestureCounter struct {
	openThreshold     float64
	closedThreshold   float64
	confirmBudget     int
	target            int
	revokeUnconfirmed bool

	state   GestureState
	count   int
	lastMAR float64
	armed   bool
	waited  int
}

func NewGestureCounter(cfg Config) *GestureCounter {
	cfg = cfg.withDefaults()
	return &GestureCounter{
		openThreshold:     cfg.OpenThreshold,
		closedThreshold:   cfg.ClosedThreshold,
		confirmBudget:     cfg.CloseConfirmSamples,
		target:            cfg.GestureTarget,
		revokeUnconfirmed: cfg.RevokeUnconfirmedOpen,
		state:             GestureWaitingOpen,
	}
}

// Observe feeds one MAR value. Zero (indeterminate) values are ignored.
func (g *GestureCounter) Observe(mar float64) GestureState {
	if mar <= 0 || g.state == GestureDone {
		return g.state
	}

	switch g.state {
	case GestureWaitingOpen:
		if mar < g.closedThreshold {
			g.armed = true
		} else if mar > g.openThreshold && g.armed {
			g.count++
			g.armed = false
			if g.count >= g.target {
				g.state = GestureDone
			} else {
				g.state = GestureWaitingCloseConfirm
				g.waited = 0
			}
		}
	case GestureWaitingCloseConfirm:
		if mar < g.closedThreshold {
			g.state = GestureWaitingOpen
			g.armed = true
			break
		}
		g.waited++
		if g.waited >= g.confirmBudget {
			// best effort: the open stands unless configured otherwise
			if g.revokeUnconfirmed && g.count > 0 {
				g.count--
			}
			g.state = GestureWaitingOpen
		}
	}

	g.lastMAR = mar
	return g.state
}

func (g *GestureCounter) State() GestureState { return g.state }

func (g *GestureCounter) Count() int { return g.count }

func (g *GestureCounter) LastMAR() float64 { return g.lastMAR }

func (g *GestureCounter) Reset() {
	g.state = GestureWaitingOpen
	g.count = 0
	g.lastMAR = 0
	g.armed = false
	g.waited = 0
}
