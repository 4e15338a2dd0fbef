package main

import (
	"fmt"

	"github.com/spf13/viper"
	"weft/engine/actors"
	"weft/libraries/weftcli"
)

func main() {
	conf := viper.New()
	actors.InitConfig(conf)
	actors.SetConfig(conf)
	rootCmd := weftcli.RootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
