package contract

// State is the key/value view an operation reads and writes. Keys and values are raw byte strings.
type State interface {
	Set(key, value string)
	Get(key string) *string
	Delete(key string)
}

// Store runs functions inside a transaction boundary. Update commits the writes only when fn
// returns nil. View never commits.
type Store interface {
	Update(fn func(State) error) error
	View(fn func(State) error) error
}
