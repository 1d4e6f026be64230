package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact of the config
	// whose digest is configHash.
	ArtifactKey(configHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Theme    string  `json:"theme,omitempty"`
	Grid     bool    `json:"grid"`
	Labels   bool    `json:"labels"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Ops      bool    `json:"ops,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey returns "artifact:<sha256>" over the hash and options.
func (DefaultKeyer) ArtifactKey(configHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", configHash, opts)
}

var _ Keyer = DefaultKeyer{}
