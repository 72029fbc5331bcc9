package entities

// ModLoader is one of the supported mod loader families for a commissioned
// launcher build.
type ModLoader string

const (
	LoaderForge    ModLoader = "Forge"
	LoaderFabric   ModLoader = "Fabric"
	LoaderNeoForge ModLoader = "NeoForge"
)

// AllModLoaders is every supported loader in display order.
var AllModLoaders = []ModLoader{
	LoaderForge,
	LoaderFabric,
	LoaderNeoForge,
}

// Valid reports whether the loader is one of the supported families.
func (m ModLoader) Valid() bool {
	switch m {
	case LoaderForge, LoaderFabric, LoaderNeoForge:
		return true
	default:
		return false
	}
}
