package main

import "github.com/racesense/telemetry-strategy-go/cmd"

func main() {
	cmd.Execute()
}
