// services/hal/internal/halcore/types_test.go

package halcore

import "testing"

func TestFuncString(t *testing.T) {
	if FuncGPIOIn.String() != "gpio_in" ||
		FuncGPIOOut.String() != "gpio_out" ||
		FuncPWM.String() != "pwm" ||
		FuncTone.String() != "tone" ||
		Func(99).String() != "unknown" {
		t.Fatal("Func.String mapping incorrect")
	}
}
