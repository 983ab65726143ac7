package cache

// ScopedKeyer prefixes every key produced by an inner Keyer. The API server
// uses it to keep its entries apart from a CLI sharing the same store:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SpriteKey implements Keyer.
func (k *ScopedKeyer) SpriteKey(imageHash string, opts SpriteKeyOpts) string {
	return k.prefix + k.inner.SpriteKey(imageHash, opts)
}

// DocumentKey implements Keyer.
func (k *ScopedKeyer) DocumentKey(docHash, format string) string {
	return k.prefix + k.inner.DocumentKey(docHash, format)
}
