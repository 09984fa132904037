package main

import "fmt"

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("holdem %s\n", version)
	return nil
}
