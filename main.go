/*
Copyright © 2026 Lattice ML <dev@lattice-ml.dev>
*/
package main

import "github.com/lattice-ml/lattice-cli/cmd"

func main() {
	cmd.Execute()
}
