package unions

// Discriminator interface allows union types to report which case they hold.
// The returned value is written verbatim into the discriminator field on
// encode, so it must match one of the case names registered on the codec.
type Discriminator interface {
	// DiscriminatorValue returns the case name of the active variant, or ""
	// when no variant is set.
	DiscriminatorValue() string
}

// DiscriminatorField interface allows union types to specify which record
// field carries the discriminator value. NewTagged uses it when no field name
// is passed explicitly.
type DiscriminatorField interface {
	// DiscriminatorFieldName returns the name of the record field that
	// contains the discriminator value (e.g., "type", "kind", "incomeType").
	DiscriminatorFieldName() string
}
