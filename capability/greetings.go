package capability

import "context"

// greetingArgs is the shared argument shape of every greeting capability.
type greetingArgs struct {
	Name string `json:"name" description:"The person's name to greet"`
}

// newGreeting builds a greeting capability that prefixes the validated name
// with the language's greeting word. The result is exactly
// word + " " + name with no trimming, escaping or normalization.
func newGreeting(name, description, word string) *Func {
	return NewFuncFromStruct(name, description, greetingArgs{},
		func(_ context.Context, args map[string]any) (string, error) {
			person, _ := args["name"].(string)
			return word + " " + person, nil
		})
}

// Greetings returns the four built-in greeting capabilities in their stable
// presentation order: English, Mandarin, Spanish, Hebrew.
func Greetings() []Capability {
	return []Capability{
		newGreeting("hello_english", "Greet someone in English.", "Hello"),
		newGreeting("hello_mandarin", "Greet someone in Mandarin Chinese.", "你好"),
		newGreeting("hello_spanish", "Greet someone in Spanish.", "Hola"),
		newGreeting("hello_hebrew", "Greet someone in Hebrew.", "שלום"),
	}
}

// NewGreetingRegistry creates a Registry preloaded with the four greeting
// capabilities.
func NewGreetingRegistry() *Registry {
	return NewRegistry(Greetings()...)
}
