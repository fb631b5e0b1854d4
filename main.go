// Package main is the entry point for the rugbymetrics CLI tool, which filters
// rugby match events and aggregates them into chart datasets.
package main

import "github.com/pable/go-rugby-metrics/cmd"

func main() {
	cmd.Execute()
}
