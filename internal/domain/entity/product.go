package entity

import "time"

// Product is a catalog record. It carries no derived state; everything on it
// is supplied by the caller and persisted verbatim.
type Product struct {
	ID          int64     // Unique identifier, assigned by the store on creation.
	Name        string    // Display name of the product.
	Description string    // Free-form description.
	PriceCents  int64     // Unit price in the smallest currency denomination.
	Stock       int       // Units on hand.
	CreatedAt   time.Time // Timestamp of record creation.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
