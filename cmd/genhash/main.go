// cmd/genhash prints a bcrypt digest for the password given as the
// first argument. Handy for seeding accounts by hand.
package main

import (
	"fmt"
	"os"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/security"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(1)
	}
	h, err := security.NewHasher().Hash(os.Args[1])
	if err != nil {
		panic(err)
	}
	fmt.Println(h)
}
