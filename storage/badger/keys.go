package badger

// Key prefixes for the three collections sharing one backend.
const (
	documentPrefix  = "doc"
	blacklistPrefix = "blk"
	vectorPrefix    = "vec"
)

func makeKey(prefix, id string) []byte {
	return []byte(prefix + ":" + id)
}

func keyPrefix(prefix string) []byte {
	return []byte(prefix + ":")
}
