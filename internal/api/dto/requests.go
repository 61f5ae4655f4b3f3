package dto

// AdvanceRequest moves the wizard to its next step.
type AdvanceRequest struct {
	Event string `json:"event"`
}

// LoadReceiptRequest carries an already-parsed receipt into a session, the
// same shape the vision collaborator produces.
type LoadReceiptRequest struct {
	Items []LoadReceiptItem `json:"items"`
	Tax   float64           `json:"tax"`
	Total float64           `json:"total"`
}

// LoadReceiptItem is one parsed line item.
type LoadReceiptItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// ScanReceiptRequest asks the vision collaborator to read a receipt photo.
// Image is a data URL (or remote URL); the server does no image processing.
type ScanReceiptRequest struct {
	Image string `json:"image"`
}

// ItemEditRequest edits one line item. Numeric fields arrive as strings
// straight from the UI; invalid values are silently rejected and the prior
// value is returned in the snapshot.
type ItemEditRequest struct {
	Name     *string `json:"name,omitempty"`
	Quantity *string `json:"quantity,omitempty"`
	Price    *string `json:"price,omitempty"`
}

// TaxEditRequest edits the receipt tax, same string semantics as item edits.
type TaxEditRequest struct {
	Tax string `json:"tax"`
}

// ParticipantEditRequest renames a participant slot.
type ParticipantEditRequest struct {
	Name string `json:"name"`
}

// AssignmentRequest runs one claim mutation primitive.
type AssignmentRequest struct {
	Action      string `json:"action"` // assign | increase | decrease | unassign
	Item        int    `json:"item"`
	Participant int    `json:"participant"`
}
