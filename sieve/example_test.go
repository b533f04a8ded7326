package sieve_test

import (
	"fmt"
	"os"

	"github.com/tstromberg/gosieve/sieve"
)

func Example() {
	c, err := sieve.New[string, int](2)
	if err != nil {
		panic(err)
	}
	c.Insert("a", 1)
	c.Insert("b", 2)
	c.Get("a")       // a is visited and survives the next eviction
	c.Insert("c", 3) // b is evicted

	_, ok := c.Get("b")
	fmt.Println(c.Keys(), ok)
	// Output: [c a] false
}

func ExampleCache_Dump() {
	c := sieve.MustNew[int, string](3)
	c.Insert(1, "one")
	c.Insert(2, "two")
	c.Get(1)

	if err := c.Dump(os.Stdout); err != nil {
		panic(err)
	}
	// Output:
	// sieve: len 2, cap 3
	//   key=2 value=two visited=false
	//   key=1 value=one visited=true
}
