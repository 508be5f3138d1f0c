package core_test

import (
	"fmt"

	"github.com/cboule/tremolo-dsp/dsp/core"
)

func ExampleClampInt() {
	fmt.Println(core.ClampInt(300, 64, 256), core.ClampInt(10, 64, 256))

	// Output:
	// 256 64
}

func ExampleInt16ToFloat() {
	fmt.Println(core.Int16ToFloat(8192))

	// Output:
	// 0.25
}
