// Executable reservectl. Run "reservectl help" for usage.
package main

import (
	"github.com/forestrie/go-reserve/internal/cmd"
)

func main() {
	cmd.Execute()
}
