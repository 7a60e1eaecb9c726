package corpuscmd

// FeatureGates exposes runtime feature toggles required by corpus command
// handlers. Callers should supply closures that read from posts.Config
// Features so handlers stay decoupled from configuration.
type FeatureGates struct {
	IndexEnabled func() bool
}

func (g FeatureGates) indexEnabled() bool {
	if g.IndexEnabled == nil {
		return true
	}
	return g.IndexEnabled()
}
