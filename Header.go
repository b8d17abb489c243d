package hostmux

// Header is used to store HTTP headers.
type Header struct {
	Key   string
	Value string
}
