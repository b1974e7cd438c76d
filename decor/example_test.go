package decor_test

import (
	"fmt"

	"inspector-binding/binding"
	"inspector-binding/decor"
)

type Ship struct {
	Fuel    int `inspect:"progress:max=MaxFuel,label=Fuel"`
	MaxFuel int
	Mode    string `inspect:"list:values=Modes"`
	Modes   []string
	Hull    int `inspect:"progress:max=MaxHull"`
}

func ExampleEvaluator_EvaluateAll() {
	ev := decor.NewEvaluator(binding.New())
	ship := &Ship{Fuel: 3, MaxFuel: 4, Mode: "cruise", Modes: []string{"dock", "cruise"}}

	models, diags := ev.EvaluateAll(ship, decor.Host{})
	for _, m := range models {
		switch m := m.(type) {
		case decor.ProgressModel:
			fmt.Println(m.Text, m.Fill)
		case decor.ListModel:
			fmt.Println(m.Labels(), m.Selected)
		case decor.WarningModel:
			fmt.Println(m.Message())
		}
	}
	fmt.Println(len(diags.Warnings), "warning")

	// Output:
	// [Fuel] 3/4 0.75
	// [dock cruise] 1
	// Hull: [MEMBER_NOT_FOUND] number source "MaxHull" could not be found (did you mean MaxFuel, Hull?)
	// 1 warning
}
