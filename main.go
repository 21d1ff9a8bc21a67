package main

import "github.com/brun04maral/agora-ledger/cmd"

func main() {
	cmd.Execute()
}
