package scene_test

import (
	"fmt"

	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/diagram"
)

func ExampleCompose() {
	s, err := scene.Compose(diagram.Sample())
	if err != nil {
		panic(err)
	}
	for _, t := range s.Tiers {
		fmt.Println(t.Name, len(t.Nodes), len(t.Pillars))
	}
	// Output:
	// Data 3 1
	// Edge 1 0
}
