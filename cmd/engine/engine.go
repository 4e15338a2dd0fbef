package main

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"weft/engine/actors"
	"weft/engine/library"
	"weft/messaging/graphindex"
	"weft/state/trustgraph"
)

func main() {
	// Various aspects of this application require global and local settings. To keep things
	// clean and tidy we put these settings in a Viper configuration.
	conf := viper.New()

	// Now we initialise this configuration with basic settings that are required on startup.
	actors.InitConfig(conf)
	// make the config accessible globally
	actors.SetConfig(conf)
	fmt.Println("CURRENT CONFIG")
	for k, v := range actors.MakeOrGetConfig().AllSettings() {
		fmt.Printf("\nKey: %s; Value: %v\n", k, v)
	}
	terminateChan := make(chan struct{})
	actors.SetTerminateChan(terminateChan)
	// touching the mind starts it and restores any persisted graph
	trustgraph.GetSnapshot()
	go refreshGraph(terminateChan)
	go cliListener()
	<-terminateChan
	actors.GetWaitGroup().Wait()
	library.LogCLI("engine has shut down", 4)
}

// refreshGraph keeps the local mind close to the eventually consistent graph
// index. A failed fetch keeps the last good state.
func refreshGraph(terminate chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			snapshot, err := graphindex.FetchGraph(actors.MyWallet().Account)
			if err != nil {
				library.LogCLI(err.Error(), 2)
				continue
			}
			trustgraph.Replace(snapshot)
		case <-terminate:
			return
		}
	}
}
