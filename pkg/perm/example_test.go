package perm_test

import (
	"fmt"

	"github.com/matzehuels/orbit/pkg/perm"
)

func ExampleNewPermutation() {
	// Two interchangeable binary variables.
	space, _ := perm.NewIndexSpace([]int{2, 2})

	// Swap v0 and v1 together with their values.
	swap, err := perm.NewPermutation(space, []int{1, 0, 4, 5, 2, 3})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Cycles:", swap)
	fmt.Println("Order:", swap.Order())
	fmt.Println("Image of 0,1:", swap.Apply(perm.State{0, 1}))
	// Output:
	// Cycles: (0 1)(2 4)(3 5)
	// Order: 2
	// Image of 0,1: 1,0
}

func ExamplePermutation_ReplaceIfLess() {
	space, _ := perm.NewIndexSpace([]int{2, 2})
	swap := perm.MustPermutation(space, []int{1, 0, 4, 5, 2, 3})

	state := perm.State{1, 0}
	fmt.Println(swap.ReplaceIfLess(state), state)
	fmt.Println(swap.ReplaceIfLess(state), state)
	// Output:
	// true 0,1
	// false 0,1
}

func ExamplePermutation_Compose() {
	space, _ := perm.NewIndexSpace([]int{2, 2})
	swap := perm.MustPermutation(space, []int{1, 0, 4, 5, 2, 3})

	fmt.Println(swap.Compose(swap.Inverse()).Identity())
	// Output:
	// true
}
