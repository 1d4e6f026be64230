package box_test

import (
	"fmt"

	"github.com/matzehuels/isotower/pkg/core/box"
)

func ExampleBuild() {
	g := box.Build(box.Spec{Width: 10, Depth: 10, Height: 5})
	fmt.Println(g.Top)
	fmt.Println(len(g.CornerFrontLeft))
	// Output:
	// M0.00 -5.00 L8.66 -10.00 L0.00 -15.00 L-8.66 -10.00 Z
	// 0
}

func ExampleBuild_rounded() {
	g := box.Build(box.Spec{Width: 80, Depth: 50, Height: 20, Radius: 40})
	fmt.Println(g.Radius)
	fmt.Println(len(g.Corners()), len(g.CornerBackRight))
	// Output:
	// 25
	// 4 6
}
