package core

import "fmt"

// Validate checks the fields every stage relies on. It is called at stage
// boundaries so a corrupted queue payload fails loudly instead of flowing
// half-formed through the pipeline.
func (d *Document) Validate() error {
	if d.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingURL)
	}
	if d.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrMissingID)
	}
	return nil
}
