package bsp_test

import (
	"fmt"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/config"
)

func ExamplePartition() {
	cfg := config.Default()
	cfg.OuterGap.Set(config.EdgeAll, 10)
	cfg.InnerGap.Set(config.EdgeAll, 5)

	output := bsp.Rect{Width: 1920, Height: 1080}
	for i, r := range bsp.Partition(3, output, cfg) {
		fmt.Printf("window %d: %v\n", i, r)
	}
	// Output:
	// window 0: 1890x520+15+15
	// window 1: 940x520+15+545
	// window 2: 940x520+965+545
}
