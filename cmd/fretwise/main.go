// Command fretwise ranks chord transitions and recommends the easiest shapes to play.
package main

func main() {
	Execute()
}
