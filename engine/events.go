package engine

// Listener is notified after the game changed: an accepted move, an undo or
// a reset.
type Listener interface {
	GameUpdated(g *Game)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(g *Game)

func (f ListenerFunc) GameUpdated(g *Game) { f(g) }

// AddListener registers l. Listeners are called synchronously, in
// registration order, after the game's lock is released.
func (g *Game) AddListener(l Listener) {
	g.mu.Lock()
	g.listeners = append(g.listeners, l)
	g.mu.Unlock()
}

// Emit notifies every listener.
func (g *Game) Emit() {
	g.mu.Lock()
	ls := append([]Listener(nil), g.listeners...)
	g.mu.Unlock()
	for _, l := range ls {
		l.GameUpdated(g)
	}
}
