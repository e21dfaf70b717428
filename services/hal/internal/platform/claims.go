package platform

import (
	"sync"

	"bolide-go/errcode"
	"bolide-go/services/hal/internal/halcore"
)

// claims tracks pin ownership for a factory.
type claims struct {
	mu     sync.Mutex
	owners map[int]claim
}

type claim struct {
	owner string
	fn    halcore.Func
}

func (c *claims) take(owner string, n int, fn halcore.Func) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.owners == nil {
		c.owners = make(map[int]claim)
	}
	if cur, ok := c.owners[n]; ok {
		return &errcode.E{C: errcode.PinInUse, Op: "claim", Msg: cur.owner + " holds it as " + cur.fn.String()}
	}
	c.owners[n] = claim{owner: owner, fn: fn}
	return nil
}

func (c *claims) release(owner string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.owners[n]; ok && cur.owner == owner {
		delete(c.owners, n)
	}
}
