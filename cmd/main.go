// cmd/main.go
package main

import cmd "github.com/mwiater/poissongauss/cmd/poissongauss"

// main starts the poissongauss CLI by delegating to the cobra root
// command defined in the poissongauss package.
func main() {
	cmd.Execute()
}
