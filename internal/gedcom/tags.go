package gedcom

// Tags shared by the normalization passes and the lineage renderer. The
// codec itself assumes nothing about the vocabulary.
const (
	TagIndividual   = "INDI"
	TagFamily       = "FAM"
	TagSource       = "SOUR"
	TagPage         = "PAGE"
	TagNote         = "NOTE"
	TagContinuation = "CONT"
)
