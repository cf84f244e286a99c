// Command greetloop runs greeting conversations against a language model
// and manages the resulting Phoenix traces.
package main

func main() {
	Execute()
}
