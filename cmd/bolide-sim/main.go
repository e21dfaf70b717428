// Command bolide-sim runs the car firmware on the host against fake pins.
package main

func main() {
	Execute()
}
