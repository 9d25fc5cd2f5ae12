package converter

// Result holds the output of a conversion.
type Result struct {
	Markdown string    `json:"markdown"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownNode      WarningType = "unknown_node"
	WarningUnknownMark      WarningType = "unknown_mark"
	WarningDroppedFeature   WarningType = "dropped_feature"
	WarningMissingAttribute WarningType = "missing_attribute"
	WarningSchemaViolation  WarningType = "schema_violation"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type     WarningType `json:"type"`
	NodeType string      `json:"nodeType,omitempty"`
	Message  string      `json:"message"`
}
