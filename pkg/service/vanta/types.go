package vanta

import "github.com/tidwall/gjson"

// Person is one raw person record from the people endpoint. The payload is
// untyped and any field may be absent, so it is held as a JSON tree and
// accessed by path lookup that never fails.
type Person struct {
	raw gjson.Result
}

// Get returns the value at the dot-separated path. A missing segment or a
// non-object path target yields a non-existent result.
func (p Person) Get(path string) gjson.Result {
	return p.raw.Get(path)
}

// Raw returns the underlying JSON text of the record
func (p Person) Raw() string {
	return p.raw.Raw
}

// ParsePerson builds a Person from raw JSON text. Useful for fixtures and
// replaying captured payloads.
func ParsePerson(raw string) Person {
	return Person{raw: gjson.Parse(raw)}
}
