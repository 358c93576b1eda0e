package dispatchers

type CommandCategory int

const (
	CategoryUncategorized CommandCategory = iota
	CategoryPipeline        // Fetch, import, commit
	CategoryInspect         // Status and history
	CategoryConfig          // Configuration
	CategoryInfo            // Version, help
)

func (c CommandCategory) String() string {
	switch c {
	case CategoryPipeline:
		return "run the pipeline"
	case CategoryInspect:
		return "inspect state"
	case CategoryConfig:
		return "configure unicon"
	case CategoryInfo:
		return "get information"
	default:
		return "other commands"
	}
}

var categoryOrder = []CommandCategory{
	CategoryPipeline,
	CategoryInspect,
	CategoryConfig,
	CategoryInfo,
	CategoryUncategorized,
}

// CategoryOrder returns the display order for categories.
func CategoryOrder() []CommandCategory {
	return categoryOrder
}
