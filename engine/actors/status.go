package actors

import (
	"github.com/sasha-s/go-deadlock"
	"weft/engine/library"
)

var terminateChan chan struct{}
var terminateMu = &deadlock.Mutex{}
var terminated = false

func SetTerminateChan(term chan struct{}) {
	terminateChan = term
}

func GetTerminateChan() chan struct{} {
	return terminateChan
}

// Shutdown closes the terminate channel so that every mind and actor can
// persist state and unwind. Safe to call more than once.
func Shutdown() {
	terminateMu.Lock()
	defer terminateMu.Unlock()
	if terminated {
		return
	}
	if terminateChan == nil {
		library.LogCLI("shutdown requested before a terminate channel was set", 2)
		return
	}
	terminated = true
	close(terminateChan)
}

var wg = &deadlock.WaitGroup{}

func GetWaitGroup() *deadlock.WaitGroup {
	return wg
}

func LogCLI(message interface{}, level int) {
	library.LogCLI(message, level)
}
