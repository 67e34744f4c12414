package model

// Discount is a reusable percentage discount code. Codes are unique
// case-insensitively and stored uppercased. There is no redemption
// tracking: an active code may be applied any number of times.
//
// Fields:
//  ID          - primary key identifier.
//  Code        - unique code, matched case-insensitively.
//  Description - human readable description.
//  Percentage  - discount percentage in [0,100].
//  Active      - whether the code can currently be applied.
type Discount struct {
	ID          uint64 `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Percentage  uint32 `json:"percentage"`
	Active      bool   `json:"active"`
}
