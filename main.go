package main

import (
	"os"

	"finsight/finsight/cmd/fetch"
	"finsight/finsight/cmd/importsms"
	"finsight/finsight/cmd/root"
	"finsight/finsight/cmd/sms"
	"finsight/finsight/cmd/unlockpdf"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(fetch.Cmd)
	root.Cmd.AddCommand(sms.Cmd)
	root.Cmd.AddCommand(importsms.Cmd)
	root.Cmd.AddCommand(unlockpdf.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
