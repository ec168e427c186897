// Package main is the entry point for the docreq CLI.
package main

import "docreq.dev/pkg/docreq/cmd"

func main() {
	cmd.Execute()
}
