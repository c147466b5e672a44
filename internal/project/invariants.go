package project

import "fmt"

// CheckInvariants enforces the cross-field rules the schema cannot express.
// The checks run in order and the first failure is reported.
func CheckInvariants(doc *Document) *ValidationResult {
	result := newValidationResult()

	for i, key := range doc.AudioKeys {
		if _, ok := doc.AudioItems[key]; !ok {
			result.add(&ValidationError{
				Path: fmt.Sprintf("audioKeys[%d]", i),
				Err:  fmt.Errorf("%w: %q", ErrDanglingKey, key),
			})
			return result
		}
	}

	for _, key := range doc.AudioKeys {
		if doc.AudioItems[key].CharacterIndex == nil {
			result.add(&ValidationError{
				Path: fmt.Sprintf("audioItems.%s.characterIndex", key),
				Err:  ErrMissingCharacterIndex,
			})
			return result
		}
	}

	return result
}
