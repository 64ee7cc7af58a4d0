package concurrency

const (
	// DefaultMax default max in-flight goroutines
	DefaultMax = 64
)

// GoLimit bounded goroutine limiter for read-only scans
type GoLimit struct {
	ch chan struct{}
}

// NewGoLimit new go limit
func NewGoLimit(max int) *GoLimit {
	return &GoLimit{
		ch: make(chan struct{}, max),
	}
}

// Add acquire a slot, blocks when max slots are taken
func (g *GoLimit) Add() {
	g.ch <- struct{}{}
}

// Done release a slot
func (g *GoLimit) Done() {
	<-g.ch
}
