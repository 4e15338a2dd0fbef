package trustgraph

import (
	"encoding/json"
	"os"

	"github.com/sasha-s/go-deadlock"
	"weft/engine/actors"
	"weft/engine/library"
)

type db struct {
	data  Snapshot
	mutex *deadlock.Mutex
}

var currentState = db{
	data:  NewSnapshot(),
	mutex: &deadlock.Mutex{},
}

var started = false
var available = &deadlock.Mutex{}

// StartDb starts the database for this mind (the Mind-state). It blocks until the database is ready to use.
func startDb() {
	available.Lock()
	defer available.Unlock()
	if !started {
		started = true
		// we need a channel to listen for a successful database start
		ready := make(chan struct{})
		// now we can start the database in a new goroutine
		go start(ready)
		// when the database has started, the goroutine will close the `ready` channel.
		<-ready //This channel listener blocks until closed by `startDb`.
		actors.LogCLI("Trust Graph Mind has started", 4)
	}
}

func start(ready chan struct{}) {
	// We add a delta to the provided waitgroup so that upstream knows when the database has been safely shut down
	actors.GetWaitGroup().Add(1)
	// Load the current graph from disk
	c, ok := actors.Open("trustgraph", "current")
	if ok {
		currentState.restoreFromDisk(c)
	}
	close(ready)
	<-actors.GetTerminateChan()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.persistToDisk()
	actors.GetWaitGroup().Done()
	actors.LogCLI("Trust Graph Mind has shut down", 4)
}

func (s *db) restoreFromDisk(f *os.File) {
	s.mutex.Lock()
	err := json.NewDecoder(f).Decode(&s.data)
	if err != nil {
		if err.Error() != "EOF" {
			actors.LogCLI(err.Error(), 0)
		}
	}
	s.mutex.Unlock()
	err = f.Close()
	if err != nil {
		actors.LogCLI(err.Error(), 0)
	}
}

// persistToDisk persists the current state to disk
func (s *db) persistToDisk() {
	b, err := json.MarshalIndent(s.data, "", " ")
	if err != nil {
		actors.LogCLI(err.Error(), 0)
	}
	actors.Write("trustgraph", "current", b)
}

// GetSnapshot returns a deep copy of the live graph for path searches and
// send-limit queries.
func GetSnapshot() Snapshot {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	return currentState.data.Clone()
}

// Replace installs a freshly fetched graph as the live state.
func Replace(snapshot Snapshot) {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	currentState.data = snapshot.Clone()
	currentState.persistToDisk()
}

func Issue(account library.Account) error {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	if err := currentState.data.Issue(account); err != nil {
		return err
	}
	currentState.persistToDisk()
	return nil
}

func SetTrust(truster, issuer library.Account, percent int64) error {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	if err := currentState.data.SetTrust(truster, issuer, percent); err != nil {
		return err
	}
	currentState.persistToDisk()
	return nil
}

func SetBalance(issuer, holder library.Account, amount library.Amount) error {
	startDb()
	currentState.mutex.Lock()
	defer currentState.mutex.Unlock()
	if err := currentState.data.SetBalance(issuer, holder, amount); err != nil {
		return err
	}
	currentState.persistToDisk()
	return nil
}
