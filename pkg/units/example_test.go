package units_test

import (
	"fmt"

	"github.com/matzehuels/stylebox/pkg/units"
)

func ExampleParse() {
	ctx := units.Context{Container: units.Size{Width: 800, Height: 600}}

	v := units.Parse("25%", units.SlotFor(units.PropLeft), ctx)
	fmt.Println(v, v.Pixels())

	v = v.WithPixels(300)
	fmt.Println(v)

	ctx.Container.Width = 400
	fmt.Println(v.Pixels(), v.Update(ctx).Pixels())
	// Output:
	// 25% 200
	// 37.5%
	// 300 150
}
