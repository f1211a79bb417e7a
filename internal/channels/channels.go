package channels

import (
	"sync"

	"github.com/AbdulWasayUl/go-world-clock/models"
)

type Channels struct {
	LoadRequest chan models.LoadRequest
	WG          *sync.WaitGroup
}

func New() *Channels {
	const bufferSize = 100
	return &Channels{
		LoadRequest: make(chan models.LoadRequest, bufferSize),
		WG:          &sync.WaitGroup{},
	}
}

// Submit registers req with the wait group before queueing it, so Wait never
// races with a request still sitting in the buffer.
func (c *Channels) Submit(req models.LoadRequest) {
	c.WG.Add(1)
	c.LoadRequest <- req
}
