// Command akactl is a demo CLI driving the S.S0055 AKA core.
package main

import "github.com/nithinshyam13/s0055aka/cli"

func main() {
	cli.Execute()
}
